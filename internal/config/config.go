// Package config handles meshfolder configuration loading and management.
package config

import "github.com/taigrr/meshfolder/pkg/meshfolder"

// Config holds all meshfolder settings.
type Config struct {
	Dataset  DatasetConfig  `yaml:"dataset"`
	Logging  LoggingConfig  `yaml:"logging"`
	View     ViewConfig     `yaml:"view"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
}

// DatasetConfig selects the directory to index.
type DatasetConfig struct {
	Root       string   `yaml:"root"`       // May contain $VAR references
	Extensions []string `yaml:"extensions"` // Case-sensitive first suffixes
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// ViewConfig holds terminal preview settings.
type ViewConfig struct {
	FPS        int    `yaml:"fps"`
	Background string `yaml:"background"` // "R,G,B"
}

// SnapshotConfig holds image export settings.
type SnapshotConfig struct {
	Size        int `yaml:"size"`        // Output edge length in pixels
	Supersample int `yaml:"supersample"` // Render scale before downsampling
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Root:       ".",
			Extensions: append([]string(nil), meshfolder.DefaultExtensions...),
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		View: ViewConfig{
			FPS:        30,
			Background: "30,30,40",
		},
		Snapshot: SnapshotConfig{
			Size:        512,
			Supersample: 2,
		},
	}
}
