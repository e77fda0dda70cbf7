package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrExists is returned by Create when the target file is already there.
var ErrExists = errors.New("config file already exists")

// Encode writes the config as YAML.
func (c *Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// SaveTo writes the config to path, creating parent directories and
// replacing any existing file.
func (c *Config) SaveTo(path string) error {
	return c.save(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC)
}

// Create writes the config to path like SaveTo, but fails with ErrExists
// rather than overwrite a file.
func (c *Config) Create(path string) error {
	err := c.save(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL)
	if errors.Is(err, os.ErrExist) {
		return fmt.Errorf("%w: %s", ErrExists, path)
	}
	return err
}

func (c *Config) save(path string, flag int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return err
	}
	if err := c.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
