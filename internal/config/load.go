package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the config file searched for in the working directory and the
// user config directory.
const FileName = "meshfolder.yaml"

// Overrides are command-line values applied on top of the file. Zero values
// leave the loaded setting alone.
type Overrides struct {
	Root       string
	Extensions []string
	Debug      bool
	LogLevel   string
	LogFile    string
}

// Load loads configuration with priority: defaults < file < overrides.
// An empty path searches the standard locations.
func Load(path string, ov Overrides) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	cfg.ApplyOverrides(ov)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides applies CLI overrides to the config.
func (c *Config) ApplyOverrides(ov Overrides) {
	if ov.Root != "" {
		c.Dataset.Root = ov.Root
	}
	if len(ov.Extensions) > 0 {
		c.Dataset.Extensions = normalizeExtensions(ov.Extensions)
	}
	if ov.LogLevel != "" {
		c.Logging.Level = ov.LogLevel
	}
	if ov.Debug {
		c.Logging.Level = "debug"
	}
	if ov.LogFile != "" {
		c.Logging.LogFile = ov.LogFile
	}
}

// Validate reports settings no command can run with.
func (c *Config) Validate() error {
	if c.Dataset.Root == "" {
		return errors.New("dataset.root is empty")
	}
	if len(c.Dataset.Extensions) == 0 {
		return errors.New("dataset.extensions is empty")
	}
	for _, ext := range c.Dataset.Extensions {
		if len(ext) < 2 || ext[0] != '.' {
			return fmt.Errorf("dataset.extensions: %q must start with a dot", ext)
		}
	}
	if c.View.FPS <= 0 {
		return fmt.Errorf("view.fps must be positive, got %d", c.View.FPS)
	}
	if c.Snapshot.Size <= 0 || c.Snapshot.Supersample <= 0 {
		return errors.New("snapshot.size and snapshot.supersample must be positive")
	}
	return nil
}

// normalizeExtensions accepts "obj" as shorthand for ".obj" and splits
// comma-separated values.
func normalizeExtensions(in []string) []string {
	var out []string
	for _, v := range in {
		for _, ext := range strings.Split(v, ",") {
			ext = strings.TrimSpace(ext)
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			out = append(out, ext)
		}
	}
	return out
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		filepath.Join(".", FileName),
		filepath.Join(ConfigDir(), FileName),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "meshfolder")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "meshfolder")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "meshfolder")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "meshfolder")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
