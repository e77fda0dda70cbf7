package meshfolder

import (
	"errors"
	"fmt"
)

var (
	// ErrNoEligibleFiles is matched by the ConfigurationError returned when
	// a scan finds nothing to index.
	ErrNoEligibleFiles = errors.New("no eligible files found")

	// ErrIndexOutOfRange is matched by every IndexError.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrLoad is matched by every LoadError.
	ErrLoad = errors.New("mesh load failed")
)

// ConfigurationError reports an index that could not be built.
type ConfigurationError struct {
	Root string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("meshfolder %s: %v", e.Root, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IndexError reports a Get or Entry call outside [0, Len()).
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Len)
}

func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// LoadError reports a catalog entry whose file could not be parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}
