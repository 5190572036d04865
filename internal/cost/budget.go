// Package cost tracks AI token and dollar spend for a single sweep run
// and gates further calls once the configured budget is exhausted.
// Budget failures are advisory: a check never fails because of cost
// accounting, AI calls are simply skipped.
package cost

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/codesweep/sweep/internal/ai"
)

// BudgetStatus represents the current budget state
type BudgetStatus int

const (
	// BudgetHealthy indicates normal operation - under budget limits
	BudgetHealthy BudgetStatus = iota
	// BudgetWarning indicates approaching budget limits (>80% by default)
	BudgetWarning
	// BudgetExceeded indicates budget limits have been exceeded
	BudgetExceeded
)

// String returns a human-readable string representation of the budget status
func (s BudgetStatus) String() string {
	switch s {
	case BudgetHealthy:
		return "HEALTHY"
	case BudgetWarning:
		return "WARNING"
	case BudgetExceeded:
		return "EXCEEDED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", s)
	}
}

// Tracker accumulates AI spend for one run and enforces limits.
// A sweep process lives for a single commit or scan, so there is no
// rolling window or persisted state; counters start at zero each run.
type Tracker struct {
	config *Config
	mu     sync.RWMutex

	tokensUsed  int64
	costUsed    float64
	calls       int
	lastUpdated time.Time

	// Alert tracking (to avoid spamming)
	warningLogged  bool
	exceededLogged bool
}

var _ ai.CostTracker = (*Tracker)(nil)

// NewTracker creates a new cost budget tracker
func NewTracker(cfg *Config) (*Tracker, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Tracker{config: cfg}, nil
}

// Allow reports whether another AI call fits within the remaining budget.
// The reason string names the exhausted limit when the answer is no.
func (t *Tracker) Allow(operation string) (bool, string) {
	if !t.config.Enabled {
		return true, ""
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.isTokenLimitExceeded() {
		return false, fmt.Sprintf("run token budget exceeded (%d/%d tokens used)",
			t.tokensUsed, t.config.MaxTokensPerRun)
	}

	if t.isCostLimitExceeded() {
		return false, fmt.Sprintf("run cost budget exceeded ($%.2f/$%.2f used)",
			t.costUsed, t.config.MaxCostPerRun)
	}

	return true, ""
}

// RecordUsage records token usage for an operation
func (t *Tracker) RecordUsage(ctx context.Context, operation string, inputTokens, outputTokens int64) error {
	if !t.config.Enabled {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.tokensUsed += inputTokens + outputTokens
	t.costUsed += t.calculateCost(inputTokens, outputTokens)
	t.calls++
	t.lastUpdated = time.Now()

	t.emitAlertsIfNeeded(t.getBudgetStatusLocked())

	return nil
}

// CheckBudget returns the current budget status without recording usage
func (t *Tracker) CheckBudget() BudgetStatus {
	if !t.config.Enabled {
		return BudgetHealthy
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.getBudgetStatusLocked()
}

// GetStats returns current budget statistics
func (t *Tracker) GetStats() BudgetStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return BudgetStats{
		Status:      t.getBudgetStatusLocked(),
		TokensUsed:  t.tokensUsed,
		CostUsed:    t.costUsed,
		Calls:       t.calls,
		LastUpdated: t.lastUpdated,
		Config:      *t.config,
	}
}

// BudgetStats contains budget statistics for one run
type BudgetStats struct {
	Status      BudgetStatus `json:"status"`
	TokensUsed  int64        `json:"tokens_used"`
	CostUsed    float64      `json:"cost_used"`
	Calls       int          `json:"calls"`
	LastUpdated time.Time    `json:"last_updated"`
	Config      Config       `json:"config"`
}

// Internal helper methods

// getBudgetStatusLocked returns the current budget status (must be called with lock held)
func (t *Tracker) getBudgetStatusLocked() BudgetStatus {
	if t.isTokenLimitExceeded() || t.isCostLimitExceeded() {
		return BudgetExceeded
	}

	if t.config.MaxTokensPerRun > 0 {
		if float64(t.tokensUsed)/float64(t.config.MaxTokensPerRun) >= t.config.WarnThreshold {
			return BudgetWarning
		}
	}

	if t.config.MaxCostPerRun > 0 {
		if t.costUsed/t.config.MaxCostPerRun >= t.config.WarnThreshold {
			return BudgetWarning
		}
	}

	return BudgetHealthy
}

// isTokenLimitExceeded checks if the run token limit is exceeded
func (t *Tracker) isTokenLimitExceeded() bool {
	return t.config.MaxTokensPerRun > 0 && t.tokensUsed >= t.config.MaxTokensPerRun
}

// isCostLimitExceeded checks if the run cost limit is exceeded
func (t *Tracker) isCostLimitExceeded() bool {
	return t.config.MaxCostPerRun > 0 && t.costUsed >= t.config.MaxCostPerRun
}

// calculateCost calculates the cost in USD for given token usage
func (t *Tracker) calculateCost(inputTokens, outputTokens int64) float64 {
	inputCost := float64(inputTokens) * t.config.InputTokenCost / 1_000_000
	outputCost := float64(outputTokens) * t.config.OutputTokenCost / 1_000_000
	return inputCost + outputCost
}

// emitAlertsIfNeeded emits alerts if budget thresholds are crossed.
// Each alert fires once per run. Must be called with mu lock held.
func (t *Tracker) emitAlertsIfNeeded(status BudgetStatus) {
	switch status {
	case BudgetWarning:
		if !t.warningLogged {
			fmt.Printf("⚠️  Cost budget warning: %d/%d tokens used ($%.4f/$%.2f)\n",
				t.tokensUsed, t.config.MaxTokensPerRun,
				t.costUsed, t.config.MaxCostPerRun)
			t.warningLogged = true
		}

	case BudgetExceeded:
		if !t.exceededLogged {
			fmt.Printf("🚨 Cost budget EXCEEDED: skipping further AI calls this run\n")
			fmt.Printf("   Run usage: %d/%d tokens ($%.4f/$%.2f)\n",
				t.tokensUsed, t.config.MaxTokensPerRun,
				t.costUsed, t.config.MaxCostPerRun)
			t.exceededLogged = true
		}
	}
}
