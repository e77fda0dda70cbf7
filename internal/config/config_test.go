package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Dataset.Root != "." {
		t.Errorf("expected root '.', got %s", cfg.Dataset.Root)
	}
	if len(cfg.Dataset.Extensions) != 2 || cfg.Dataset.Extensions[0] != ".obj" || cfg.Dataset.Extensions[1] != ".ply" {
		t.Errorf("expected [.obj .ply], got %v", cfg.Dataset.Extensions)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
	if cfg.View.FPS != 30 {
		t.Errorf("expected fps 30, got %d", cfg.View.FPS)
	}
	if cfg.Snapshot.Size != 512 || cfg.Snapshot.Supersample != 2 {
		t.Errorf("unexpected snapshot defaults %+v", cfg.Snapshot)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestDefaultDoesNotAlias(t *testing.T) {
	cfg := Default()
	cfg.Dataset.Extensions[0] = ".stl"
	if Default().Dataset.Extensions[0] != ".obj" {
		t.Error("Default must copy the extension list")
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "meshfolder.yaml")

	yamlContent := `
dataset:
  root: "$DATA/meshes"
  extensions: [".ply"]

logging:
  level: "debug"
  log_file: "meshfolder.log"

view:
  fps: 60
  background: "0,0,0"

snapshot:
  size: 256
  supersample: 4
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Dataset.Root != "$DATA/meshes" {
		t.Errorf("root should be kept unexpanded, got %s", cfg.Dataset.Root)
	}
	if len(cfg.Dataset.Extensions) != 1 || cfg.Dataset.Extensions[0] != ".ply" {
		t.Errorf("expected [.ply], got %v", cfg.Dataset.Extensions)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "meshfolder.log" {
		t.Errorf("expected log file 'meshfolder.log', got %s", cfg.Logging.LogFile)
	}
	if cfg.View.FPS != 60 || cfg.View.Background != "0,0,0" {
		t.Errorf("unexpected view config %+v", cfg.View)
	}
	if cfg.Snapshot.Size != 256 || cfg.Snapshot.Supersample != 4 {
		t.Errorf("unexpected snapshot config %+v", cfg.Snapshot)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
view:
  fps: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/meshfolder.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
	if _, err := Load("/nonexistent/path/meshfolder.yaml", Overrides{}); err == nil {
		t.Error("expected error from Load with explicit missing path")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(FileName, []byte("view:\n  fps: 10\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path == "" {
		t.Error("expected to find meshfolder.yaml in current directory")
	}

	cfg, err := Load("", Overrides{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.View.FPS != 10 {
		t.Errorf("expected fps 10 from discovered file, got %d", cfg.View.FPS)
	}
}

func TestApplyOverrides(t *testing.T) {
	tests := []struct {
		name   string
		ov     Overrides
		verify func(t *testing.T, cfg *Config)
	}{
		{
			name: "root",
			ov:   Overrides{Root: "/data"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Dataset.Root != "/data" {
					t.Errorf("expected root /data, got %s", cfg.Dataset.Root)
				}
			},
		},
		{
			name: "extensions shorthand",
			ov:   Overrides{Extensions: []string{"obj, glb", ".ply"}},
			verify: func(t *testing.T, cfg *Config) {
				want := []string{".obj", ".glb", ".ply"}
				if len(cfg.Dataset.Extensions) != len(want) {
					t.Fatalf("expected %v, got %v", want, cfg.Dataset.Extensions)
				}
				for i := range want {
					if cfg.Dataset.Extensions[i] != want[i] {
						t.Errorf("extension %d = %s, want %s", i, cfg.Dataset.Extensions[i], want[i])
					}
				}
			},
		},
		{
			name: "debug wins over level",
			ov:   Overrides{LogLevel: "warn", Debug: true},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name: "log file",
			ov:   Overrides{LogFile: "/tmp/mf.log"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.LogFile != "/tmp/mf.log" {
					t.Errorf("expected log file /tmp/mf.log, got %s", cfg.Logging.LogFile)
				}
			},
		},
		{
			name: "empty overrides",
			ov:   Overrides{},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Dataset.Root != "." || cfg.Logging.Level != "info" {
					t.Errorf("empty overrides changed config: %+v", cfg)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.ApplyOverrides(tt.ov)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "meshfolder.yaml")

	yamlContent := `
dataset:
  root: /from/file
logging:
  level: warn
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath, Overrides{Root: "/from/flag"})
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Dataset.Root != "/from/flag" {
		t.Errorf("expected root from flag, got %s", cfg.Dataset.Root)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected level from file, got %s", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty root", func(c *Config) { c.Dataset.Root = "" }},
		{"no extensions", func(c *Config) { c.Dataset.Extensions = nil }},
		{"dotless extension", func(c *Config) { c.Dataset.Extensions = []string{"obj"} }},
		{"zero fps", func(c *Config) { c.View.FPS = 0 }},
		{"zero size", func(c *Config) { c.Snapshot.Size = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "meshfolder.yaml")

	cfg := Default()
	cfg.Dataset.Root = "/srv/meshes"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Dataset.Root != "/srv/meshes" {
		t.Errorf("expected saved root, got %s", loaded.Dataset.Root)
	}
}

func TestSaveToReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meshfolder.yaml")
	if err := os.WriteFile(path, []byte("dataset:\n  root: /old/root/that/is/longer\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	cfg.Dataset.Root = "/new"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := Load(path, Overrides{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Dataset.Root != "/new" {
		t.Errorf("expected /new, got %s", loaded.Dataset.Root)
	}
}

func TestCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "meshfolder.yaml")

	cfg := Default()
	if err := cfg.Create(path); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := cfg.Create(path); !errors.Is(err, ErrExists) {
		t.Errorf("second Create: expected ErrExists, got %v", err)
	}
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	if err := Default().Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"dataset:", "root:", "- .obj", "supersample: 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("encoded config missing %q:\n%s", want, out)
		}
	}
}
