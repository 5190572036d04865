package cost

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds cost budgeting configuration
type Config struct {
	// MaxTokensPerRun is the maximum number of tokens (input + output) allowed per run
	// 0 = unlimited
	// Default: 50000 (plenty for one commit's worth of suggestions)
	MaxTokensPerRun int64 `json:"max_tokens_per_run"`

	// MaxCostPerRun is the maximum cost in USD allowed per run
	// 0.0 = unlimited (use token limits instead)
	// Default: 0.50
	MaxCostPerRun float64 `json:"max_cost_per_run"`

	// WarnThreshold is the fraction of budget usage that triggers a warning
	// Default: 0.80 (80%)
	WarnThreshold float64 `json:"warn_threshold"`

	// Enabled controls whether cost budgeting is active
	// Default: true
	Enabled bool `json:"enabled"`

	// InputTokenCost is the cost per 1M input tokens (in USD)
	// Default: $3.00 for Claude Sonnet 4.5
	InputTokenCost float64 `json:"input_token_cost"`

	// OutputTokenCost is the cost per 1M output tokens (in USD)
	// Default: $15.00 for Claude Sonnet 4.5
	OutputTokenCost float64 `json:"output_token_cost"`
}

// DefaultConfig returns default cost budgeting configuration
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		MaxTokensPerRun: 50000,
		MaxCostPerRun:   0.50,
		WarnThreshold:   0.80,
		InputTokenCost:  3.00,  // $3 per 1M input tokens (Claude Sonnet 4.5)
		OutputTokenCost: 15.00, // $15 per 1M output tokens (Claude Sonnet 4.5)
	}
}

// LoadFromEnv loads cost configuration from environment variables.
// Environment variables override default values.
// Prefix: SWEEP_BUDGET_
func LoadFromEnv() *Config {
	cfg := DefaultConfig()

	if val := os.Getenv("SWEEP_BUDGET_ENABLED"); val != "" {
		cfg.Enabled = parseBool(val)
	}

	if val := os.Getenv("SWEEP_BUDGET_MAX_TOKENS"); val != "" {
		if tokens, err := strconv.ParseInt(val, 10, 64); err == nil && tokens >= 0 {
			cfg.MaxTokensPerRun = tokens
		}
	}

	if val := os.Getenv("SWEEP_BUDGET_MAX_COST"); val != "" {
		if cost, err := strconv.ParseFloat(val, 64); err == nil && cost >= 0 {
			cfg.MaxCostPerRun = cost
		}
	}

	if val := os.Getenv("SWEEP_BUDGET_WARN_THRESHOLD"); val != "" {
		if threshold, err := strconv.ParseFloat(val, 64); err == nil && threshold > 0 && threshold <= 1.0 {
			cfg.WarnThreshold = threshold
		}
	}

	if val := os.Getenv("SWEEP_BUDGET_INPUT_TOKEN_COST"); val != "" {
		if cost, err := strconv.ParseFloat(val, 64); err == nil && cost >= 0 {
			cfg.InputTokenCost = cost
		}
	}

	if val := os.Getenv("SWEEP_BUDGET_OUTPUT_TOKEN_COST"); val != "" {
		if cost, err := strconv.ParseFloat(val, 64); err == nil && cost >= 0 {
			cfg.OutputTokenCost = cost
		}
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("Warning: invalid cost config from environment: %v (using defaults)\n", err)
		return DefaultConfig()
	}

	return cfg
}

// Validate checks that the configuration has safe and reasonable values
func (c *Config) Validate() error {
	if c.MaxTokensPerRun < 0 {
		return fmt.Errorf("max_tokens_per_run must be non-negative, got %d", c.MaxTokensPerRun)
	}

	if c.MaxCostPerRun < 0 {
		return fmt.Errorf("max_cost_per_run must be non-negative, got %.2f", c.MaxCostPerRun)
	}

	if c.WarnThreshold <= 0 || c.WarnThreshold > 1.0 {
		return fmt.Errorf("warn_threshold must be between 0 and 1, got %.2f", c.WarnThreshold)
	}

	if c.InputTokenCost < 0 {
		return fmt.Errorf("input_token_cost must be non-negative, got %.2f", c.InputTokenCost)
	}

	if c.OutputTokenCost < 0 {
		return fmt.Errorf("output_token_cost must be non-negative, got %.2f", c.OutputTokenCost)
	}

	return nil
}

// parseBool parses a boolean string
func parseBool(val string) bool {
	switch val {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return true
	}
}
