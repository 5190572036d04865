package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigRoundTrip(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "sweep-config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := Path(tmpDir)
	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	defaults := DefaultConfig()
	if loaded.Thresholds != defaults.Thresholds {
		t.Errorf("Thresholds = %+v, want %+v", loaded.Thresholds, defaults.Thresholds)
	}
	if loaded.Strict != defaults.Strict {
		t.Errorf("Strict = %v, want %v", loaded.Strict, defaults.Strict)
	}
	if loaded.Report != defaults.Report {
		t.Errorf("Report = %+v, want %+v", loaded.Report, defaults.Report)
	}
	if loaded.AI != defaults.AI {
		t.Errorf("AI = %+v, want %+v", loaded.AI, defaults.AI)
	}
	if len(loaded.Generated.Dirs) != len(defaults.Generated.Dirs) {
		t.Errorf("Generated.Dirs = %v, want %v", loaded.Generated.Dirs, defaults.Generated.Dirs)
	}
	if len(loaded.Checks.TodoMarkers) != len(defaults.Checks.TodoMarkers) {
		t.Errorf("TodoMarkers = %v, want %v", loaded.Checks.TodoMarkers, defaults.Checks.TodoMarkers)
	}
}

func TestLoadKeepsDefaultsForAbsentKeys(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "sweep-config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	partial := "thresholds:\n  max_files: 5\n  max_lines: 10\n  large_file_lines: 200\nstrict: true\n"
	path := filepath.Join(tmpDir, "config.yml")
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Thresholds.MaxFiles != 5 {
		t.Errorf("MaxFiles = %d, want 5", loaded.Thresholds.MaxFiles)
	}
	if !loaded.Strict {
		t.Error("Expected strict to be true")
	}

	// Sections absent from the file keep their defaults
	defaults := DefaultConfig()
	if loaded.Report.Directory != defaults.Report.Directory {
		t.Errorf("Report.Directory = %q, want %q", loaded.Report.Directory, defaults.Report.Directory)
	}
	if loaded.AI.Model != defaults.AI.Model {
		t.Errorf("AI.Model = %q, want %q", loaded.AI.Model, defaults.AI.Model)
	}
	if len(loaded.Generated.Globs) == 0 {
		t.Error("Expected default generated globs to survive a partial file")
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "sweep-config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	loaded, err := LoadOrDefault(tmpDir)
	if err != nil {
		t.Fatalf("LoadOrDefault failed: %v", err)
	}
	if loaded.Thresholds.MaxFiles != DefaultConfig().Thresholds.MaxFiles {
		t.Errorf("Expected defaults for a missing file, got %+v", loaded.Thresholds)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "sweep-config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "config.yml")
	if err := os.WriteFile(path, []byte("thresholds: [not a map"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected an error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "negative max_files",
			mutate:  func(c *Config) { c.Thresholds.MaxFiles = -1 },
			wantErr: true,
		},
		{
			name:    "negative large_file_lines",
			mutate:  func(c *Config) { c.Thresholds.LargeFileLines = -200 },
			wantErr: true,
		},
		{
			name:    "zero large_file_lines disables the check",
			mutate:  func(c *Config) { c.Thresholds.LargeFileLines = 0 },
			wantErr: false,
		},
		{
			name:    "negative workers",
			mutate:  func(c *Config) { c.Workers = -2 },
			wantErr: true,
		},
		{
			name:    "empty report directory",
			mutate:  func(c *Config) { c.Report.Directory = "" },
			wantErr: true,
		},
		{
			name:    "zero ai max_tokens",
			mutate:  func(c *Config) { c.AI.MaxTokens = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestToClassifyConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Thresholds.MaxFiles = 4
	cfg.Thresholds.LargeFileLines = 500
	cfg.Checks.TodoMarkers = []string{"REVISIT"}
	cfg.Checks.DebugPatterns = map[string][]string{
		"python": {`\bic\(`},
	}

	out := cfg.ToClassifyConfig()

	if out.MaxFiles != 4 {
		t.Errorf("MaxFiles = %d, want 4", out.MaxFiles)
	}
	if out.LargeFileLines != 500 {
		t.Errorf("LargeFileLines = %d, want 500", out.LargeFileLines)
	}
	if len(out.TodoMarkers) != 1 || out.TodoMarkers[0] != "REVISIT" {
		t.Errorf("TodoMarkers = %v, want [REVISIT]", out.TodoMarkers)
	}

	// The overridden language replaces its patterns; others keep built-ins
	if len(out.DebugPatterns["python"]) != 1 {
		t.Errorf("python patterns = %v, want the single override", out.DebugPatterns["python"])
	}
	if len(out.DebugPatterns["javascript"]) == 0 {
		t.Error("Expected built-in javascript patterns to survive")
	}
}
