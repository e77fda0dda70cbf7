package models

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// LoaderFunc parses the mesh file at path.
type LoaderFunc func(path string) (*Mesh, error)

var (
	// ErrUnsupportedFormat is returned when no loader is registered for an
	// extension.
	ErrUnsupportedFormat = errors.New("unsupported mesh format")

	// ErrNoVertices is returned for files that parse but hold no geometry.
	ErrNoVertices = errors.New("mesh has no vertices")
)

// IndexRangeError reports a face that references a missing vertex.
type IndexRangeError struct {
	Face     int
	Index    int
	Vertices int
}

func (e *IndexRangeError) Error() string {
	return fmt.Sprintf("face %d references vertex %d of %d", e.Face, e.Index, e.Vertices)
}

var (
	registryMu sync.RWMutex
	registry   = map[string]LoaderFunc{
		".obj":  LoadOBJ,
		".ply":  LoadPLY,
		".glb":  LoadGLTF,
		".gltf": LoadGLTF,
	}
)

// Register installs fn as the loader for ext (for example ".off").
// Extensions are matched case-insensitively.
func Register(ext string, fn LoaderFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(ext)] = fn
}

// Formats returns the registered extensions in sorted order.
func Formats() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	exts := make([]string, 0, len(registry))
	for ext := range registry {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Load parses path choosing the loader from its final extension.
func Load(path string) (*Mesh, error) {
	return LoadFormat(path, filepath.Ext(path))
}

// LoadFormat parses path with the loader registered for ext, regardless of
// the file's actual name.
func LoadFormat(path, ext string) (*Mesh, error) {
	registryMu.RLock()
	fn, ok := registry[strings.ToLower(ext)]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	mesh, err := fn(path)
	if err != nil {
		return nil, err
	}
	if len(mesh.Vertices) == 0 {
		return nil, ErrNoVertices
	}
	if err := mesh.checkIndices(); err != nil {
		return nil, err
	}
	return mesh, nil
}
