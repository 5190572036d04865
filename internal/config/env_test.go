package config

import (
	"testing"
)

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name:    "no environment variables uses file values",
			envVars: map[string]string{},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				defaults := DefaultConfig()
				if cfg.Thresholds != defaults.Thresholds {
					t.Errorf("Thresholds = %+v, want %+v", cfg.Thresholds, defaults.Thresholds)
				}
				if cfg.Strict != defaults.Strict {
					t.Errorf("Strict = %v, want %v", cfg.Strict, defaults.Strict)
				}
			},
		},
		{
			name: "valid overrides",
			envVars: map[string]string{
				"SWEEP_MAX_FILES":        "6",
				"SWEEP_MAX_LINES":        "40",
				"SWEEP_LARGE_FILE_LINES": "300",
				"SWEEP_STRICT":           "true",
				"SWEEP_WORKERS":          "2",
				"SWEEP_AI_MODEL":         "claude-3-5-haiku-20241022",
				"SWEEP_AI_MAX_TOKENS":    "2048",
			},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Thresholds.MaxFiles != 6 {
					t.Errorf("MaxFiles = %d, want 6", cfg.Thresholds.MaxFiles)
				}
				if cfg.Thresholds.MaxLines != 40 {
					t.Errorf("MaxLines = %d, want 40", cfg.Thresholds.MaxLines)
				}
				if cfg.Thresholds.LargeFileLines != 300 {
					t.Errorf("LargeFileLines = %d, want 300", cfg.Thresholds.LargeFileLines)
				}
				if !cfg.Strict {
					t.Error("Expected strict override")
				}
				if cfg.Workers != 2 {
					t.Errorf("Workers = %d, want 2", cfg.Workers)
				}
				if cfg.AI.Model != "claude-3-5-haiku-20241022" {
					t.Errorf("AI.Model = %q", cfg.AI.Model)
				}
				if cfg.AI.MaxTokens != 2048 {
					t.Errorf("AI.MaxTokens = %d, want 2048", cfg.AI.MaxTokens)
				}
			},
		},
		{
			name: "invalid integer",
			envVars: map[string]string{
				"SWEEP_MAX_FILES": "many",
			},
			wantErr: true,
		},
		{
			name: "invalid boolean",
			envVars: map[string]string{
				"SWEEP_STRICT": "definitely",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			cfg := DefaultConfig()
			err := cfg.ApplyEnv()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyEnv() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil && err == nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestSkipRequested(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", false},
		{"1", true},
		{"true", true},
		{"yes please", true},
		{"0", false},
		{"false", false},
		// The hook's shell test matches "0" and "false" exactly
		{"FALSE", true},
	}

	for _, tt := range tests {
		t.Run("value "+tt.value, func(t *testing.T) {
			t.Setenv(skipEnv, tt.value)
			if got := SkipRequested(); got != tt.want {
				t.Errorf("SkipRequested() with %q = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
