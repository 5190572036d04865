package cost

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.Enabled {
		t.Error("budgeting should be enabled by default")
	}
	if cfg.MaxTokensPerRun != 50000 {
		t.Errorf("MaxTokensPerRun = %d, want 50000", cfg.MaxTokensPerRun)
	}
	if cfg.MaxCostPerRun != 0.50 {
		t.Errorf("MaxCostPerRun = %f, want 0.50", cfg.MaxCostPerRun)
	}
	if cfg.WarnThreshold != 0.80 {
		t.Errorf("WarnThreshold = %f, want 0.80", cfg.WarnThreshold)
	}
	if cfg.InputTokenCost != 3.00 {
		t.Errorf("InputTokenCost = %f, want 3.00", cfg.InputTokenCost)
	}
	if cfg.OutputTokenCost != 15.00 {
		t.Errorf("OutputTokenCost = %f, want 15.00", cfg.OutputTokenCost)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearBudgetEnv := func(t *testing.T) {
		t.Setenv("SWEEP_BUDGET_ENABLED", "")
		t.Setenv("SWEEP_BUDGET_MAX_TOKENS", "")
		t.Setenv("SWEEP_BUDGET_MAX_COST", "")
		t.Setenv("SWEEP_BUDGET_WARN_THRESHOLD", "")
		t.Setenv("SWEEP_BUDGET_INPUT_TOKEN_COST", "")
		t.Setenv("SWEEP_BUDGET_OUTPUT_TOKEN_COST", "")
	}

	t.Run("no env vars uses defaults", func(t *testing.T) {
		clearBudgetEnv(t)

		cfg := LoadFromEnv()
		if cfg.MaxTokensPerRun != 50000 {
			t.Errorf("MaxTokensPerRun = %d, want default 50000", cfg.MaxTokensPerRun)
		}
	})

	t.Run("env vars override defaults", func(t *testing.T) {
		clearBudgetEnv(t)
		t.Setenv("SWEEP_BUDGET_ENABLED", "false")
		t.Setenv("SWEEP_BUDGET_MAX_TOKENS", "1234")
		t.Setenv("SWEEP_BUDGET_MAX_COST", "2.5")
		t.Setenv("SWEEP_BUDGET_WARN_THRESHOLD", "0.5")

		cfg := LoadFromEnv()
		if cfg.Enabled {
			t.Error("Enabled should be false")
		}
		if cfg.MaxTokensPerRun != 1234 {
			t.Errorf("MaxTokensPerRun = %d, want 1234", cfg.MaxTokensPerRun)
		}
		if cfg.MaxCostPerRun != 2.5 {
			t.Errorf("MaxCostPerRun = %f, want 2.5", cfg.MaxCostPerRun)
		}
		if cfg.WarnThreshold != 0.5 {
			t.Errorf("WarnThreshold = %f, want 0.5", cfg.WarnThreshold)
		}
	})

	t.Run("invalid values are ignored", func(t *testing.T) {
		clearBudgetEnv(t)
		t.Setenv("SWEEP_BUDGET_MAX_TOKENS", "-5")
		t.Setenv("SWEEP_BUDGET_WARN_THRESHOLD", "1.5")
		t.Setenv("SWEEP_BUDGET_MAX_COST", "not-a-number")

		cfg := LoadFromEnv()
		if cfg.MaxTokensPerRun != 50000 {
			t.Errorf("negative MaxTokensPerRun should keep default, got %d", cfg.MaxTokensPerRun)
		}
		if cfg.WarnThreshold != 0.80 {
			t.Errorf("out-of-range WarnThreshold should keep default, got %f", cfg.WarnThreshold)
		}
		if cfg.MaxCostPerRun != 0.50 {
			t.Errorf("unparseable MaxCostPerRun should keep default, got %f", cfg.MaxCostPerRun)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"unlimited tokens and cost valid", func(c *Config) { c.MaxTokensPerRun = 0; c.MaxCostPerRun = 0 }, false},
		{"negative tokens", func(c *Config) { c.MaxTokensPerRun = -1 }, true},
		{"negative cost", func(c *Config) { c.MaxCostPerRun = -0.5 }, true},
		{"zero threshold", func(c *Config) { c.WarnThreshold = 0 }, true},
		{"threshold above one", func(c *Config) { c.WarnThreshold = 1.1 }, true},
		{"negative input price", func(c *Config) { c.InputTokenCost = -1 }, true},
		{"negative output price", func(c *Config) { c.OutputTokenCost = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestParseBool(t *testing.T) {
	trueValues := []string{"true", "1", "yes", "on"}
	for _, val := range trueValues {
		if !parseBool(val) {
			t.Errorf("parseBool(%q) = false, want true", val)
		}
	}

	falseValues := []string{"false", "0", "no", "off"}
	for _, val := range falseValues {
		if parseBool(val) {
			t.Errorf("parseBool(%q) = true, want false", val)
		}
	}

	if !parseBool("garbage") {
		t.Error("parseBool should default to true for unrecognized values")
	}
}
