package meshfolder

import (
	"fmt"
)

// OriginKind records where in the tree an entry was found.
type OriginKind int

const (
	// KindFile marks a mesh directly under the root.
	KindFile OriginKind = iota
	// KindDirectory marks a mesh inside a first-level subdirectory.
	KindDirectory
)

func (k OriginKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "dir"
	}
	return fmt.Sprintf("OriginKind(%d)", int(k))
}

// MarshalText encodes the kind as "file" or "dir".
func (k OriginKind) MarshalText() ([]byte, error) {
	switch k {
	case KindFile, KindDirectory:
		return []byte(k.String()), nil
	}
	return nil, fmt.Errorf("invalid origin kind %d", int(k))
}

// UnmarshalText decodes "file" or "dir".
func (k *OriginKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "file":
		*k = KindFile
	case "dir":
		*k = KindDirectory
	default:
		return fmt.Errorf("invalid origin kind %q", b)
	}
	return nil
}

// Entry is one catalogued mesh file.
type Entry struct {
	Path string
	Kind OriginKind
	// Ext is the suffix that matched the allowed set and selects the parser.
	Ext string
}

// Record is a loaded sample. The JSON field names are the contract shared
// with training and inference consumers.
type Record struct {
	Vertices [][3]float32 `json:"vertices"`
	Faces    [][]int32    `json:"faces"`
	Index    int          `json:"indices"`
	Path     string       `json:"paths"`
	Kind     OriginKind   `json:"paths_type"`
}

// Transform maps a loaded record to a derived one. An Index stores it for
// callers but never applies it.
type Transform func(*Record) (*Record, error)
