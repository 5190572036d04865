// Package config loads and persists the toolkit configuration.
//
// Configuration lives at .sweep/config.yml inside the repository. Every
// value has a default, so a missing file is not an error. Environment
// variables with the SWEEP_ prefix override file values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/codesweep/sweep/internal/classify"
)

const (
	// DirName is the toolkit's dot-directory at the repository root.
	DirName = ".sweep"

	// FileName is the config file inside DirName.
	FileName = "config.yml"
)

// Config is the on-disk toolkit configuration.
type Config struct {
	Thresholds ThresholdConfig `yaml:"thresholds"`
	Generated  GeneratedConfig `yaml:"generated"`
	Checks     ChecksConfig    `yaml:"checks"`

	// Strict makes `sweep check` exit non-zero when issues are found
	Strict bool `yaml:"strict"`

	Report ReportConfig `yaml:"report"`
	AI     AIConfig     `yaml:"ai"`

	// Workers caps concurrent file scans; 0 derives a bound from the
	// CPU count
	Workers int `yaml:"workers,omitempty"`
}

// ThresholdConfig sets the minimal-change budgets and the large-file bar.
type ThresholdConfig struct {
	// MaxFiles is the most non-generated files a minimal change may touch
	MaxFiles int `yaml:"max_files"`

	// MaxLines is the most changed lines (insertions plus deletions)
	// a minimal change may carry
	MaxLines int `yaml:"max_lines"`

	// LargeFileLines flags any scanned file longer than this; 0 disables
	LargeFileLines int `yaml:"large_file_lines"`
}

// GeneratedConfig lists paths classified without being opened.
type GeneratedConfig struct {
	// Dirs are directory prefixes or path segments (e.g. "dist/")
	Dirs []string `yaml:"dirs"`

	// Globs match the basename, or the full path when they contain a slash
	Globs []string `yaml:"globs"`

	// SiblingSources maps an extension to source extensions whose
	// presence beside the file marks it as build output (.js next to .ts)
	SiblingSources map[string][]string `yaml:"sibling_sources,omitempty"`
}

// ChecksConfig tunes the per-line scanners.
type ChecksConfig struct {
	// TodoMarkers are the words flagged as deferred-work markers
	TodoMarkers []string `yaml:"todo_markers"`

	// DebugPatterns maps a language to regexes flagged as debug output.
	// Languages listed here replace their built-in patterns; omitted
	// languages keep them.
	DebugPatterns map[string][]string `yaml:"debug_patterns,omitempty"`
}

// ReportConfig controls where and how reports render.
type ReportConfig struct {
	// Directory receives generated reports and prompts, relative to
	// the repository root
	Directory string `yaml:"directory"`

	// Metrics adds per-language line counts to written reports
	Metrics bool `yaml:"metrics"`
}

// AIConfig configures the optional AI cleanup suggestions.
type AIConfig struct {
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
}

// DefaultConfig returns the configuration used when no file exists.
// Classification defaults are shared with the classify package so the
// written file documents the real built-in values.
func DefaultConfig() *Config {
	base := classify.DefaultConfig()
	return &Config{
		Thresholds: ThresholdConfig{
			MaxFiles:       base.MaxFiles,
			MaxLines:       base.MaxLines,
			LargeFileLines: base.LargeFileLines,
		},
		Generated: GeneratedConfig{
			Dirs:           base.GeneratedDirs,
			Globs:          base.GeneratedGlobs,
			SiblingSources: base.SiblingSources,
		},
		Checks: ChecksConfig{
			TodoMarkers: base.TodoMarkers,
		},
		Strict: false,
		Report: ReportConfig{
			Directory: DirName,
			Metrics:   true,
		},
		AI: AIConfig{
			Model:     "claude-sonnet-4-5-20250929",
			MaxTokens: 4096,
		},
	}
}

// Dir returns the toolkit directory for a repository root.
func Dir(repoRoot string) string {
	return filepath.Join(repoRoot, DirName)
}

// Path returns the config file path for a repository root.
func Path(repoRoot string) string {
	return filepath.Join(repoRoot, DirName, FileName)
}

// Load reads a config file. Values absent from the file keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	return config, nil
}

// LoadOrDefault loads the repository's config file, returning defaults
// when the file does not exist.
func LoadOrDefault(repoRoot string) (*Config, error) {
	config, err := Load(Path(repoRoot))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	return config, nil
}

// Save writes the config file, creating the toolkit directory if needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Validate checks the ranges the yaml layer cannot enforce. Pattern
// syntax is validated later when the classifier compiles.
func (c *Config) Validate() error {
	if c.Thresholds.MaxFiles < 0 {
		return fmt.Errorf("thresholds.max_files cannot be negative (got %d)", c.Thresholds.MaxFiles)
	}
	if c.Thresholds.MaxLines < 0 {
		return fmt.Errorf("thresholds.max_lines cannot be negative (got %d)", c.Thresholds.MaxLines)
	}
	if c.Thresholds.LargeFileLines < 0 {
		return fmt.Errorf("thresholds.large_file_lines cannot be negative (got %d)", c.Thresholds.LargeFileLines)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers cannot be negative (got %d)", c.Workers)
	}
	if c.Report.Directory == "" {
		return fmt.Errorf("report.directory cannot be empty")
	}
	if c.AI.MaxTokens < 1 {
		return fmt.Errorf("ai.max_tokens must be at least 1 (got %d)", c.AI.MaxTokens)
	}
	return nil
}

// ToClassifyConfig converts the file form into the classifier's config.
// Built-in debug and declaration patterns are kept unless the file
// overrides a language explicitly.
func (c *Config) ToClassifyConfig() classify.Config {
	cfg := classify.DefaultConfig()

	cfg.MaxFiles = c.Thresholds.MaxFiles
	cfg.MaxLines = c.Thresholds.MaxLines
	cfg.LargeFileLines = c.Thresholds.LargeFileLines
	cfg.Workers = c.Workers

	if c.Generated.Dirs != nil {
		cfg.GeneratedDirs = c.Generated.Dirs
	}
	if c.Generated.Globs != nil {
		cfg.GeneratedGlobs = c.Generated.Globs
	}
	if c.Generated.SiblingSources != nil {
		cfg.SiblingSources = c.Generated.SiblingSources
	}
	if c.Checks.TodoMarkers != nil {
		cfg.TodoMarkers = c.Checks.TodoMarkers
	}
	for language, patterns := range c.Checks.DebugPatterns {
		cfg.DebugPatterns[language] = patterns
	}

	return cfg
}

// Resolve loads the repository config, overlays environment variables,
// and validates the result.
func Resolve(repoRoot string) (*Config, error) {
	config, err := LoadOrDefault(repoRoot)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}
