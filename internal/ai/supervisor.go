// Package ai provides the Anthropic-backed cleanup suggestion engine.
//
// All API traffic funnels through a single Supervisor so that retry,
// circuit breaking, rate limiting, and cost budgeting apply uniformly
// no matter which command triggered the call.
package ai

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Tiered model selection: cleanup suggestion prompts carry file excerpts
// and need real reasoning, so the default is Sonnet. Haiku stays available
// for cheap one-shot calls.
//
// Environment variable overrides:
// - SWEEP_MODEL_DEFAULT: Override default model (default: Sonnet)
// - SWEEP_MODEL_SIMPLE: Override model for simple tasks (default: Haiku)
const (
	// ModelSonnet is the high-end model for complex reasoning tasks
	ModelSonnet = "claude-sonnet-4-5-20250929"

	// ModelHaiku is the cost-efficient model for simple tasks
	ModelHaiku = "claude-3-5-haiku-20241022"
)

// rateLimitBurst is the burst size for the API rate limiter.
const rateLimitBurst = 5

// GetDefaultModel returns the default model, checking SWEEP_MODEL_DEFAULT env var first
func GetDefaultModel() string {
	if model := os.Getenv("SWEEP_MODEL_DEFAULT"); model != "" {
		return model
	}
	return ModelSonnet
}

// GetSimpleTaskModel returns the model for simple tasks, checking SWEEP_MODEL_SIMPLE env var first
func GetSimpleTaskModel() string {
	if model := os.Getenv("SWEEP_MODEL_SIMPLE"); model != "" {
		return model
	}
	return ModelHaiku
}

// CostTracker defines the interface for cost budgeting.
// This allows dependency injection and testing without circular imports.
type CostTracker interface {
	// Allow reports whether another AI call fits the budget.
	// The second return value explains a refusal.
	Allow(operation string) (bool, string)

	// RecordUsage records token usage for an operation.
	RecordUsage(ctx context.Context, operation string, inputTokens, outputTokens int64) error
}

// Supervisor makes AI calls on behalf of the cleanup commands.
//
// Its responsibilities are distributed across multiple files:
// - supervisor.go: core struct and constructor (this file)
// - retry.go: circuit breaker and retry logic
// - cleanup.go: cleanup suggestion generation
// - json_parser.go: resilient parsing of model output
// - utils.go: the CallAI entry point and shared helpers
type Supervisor struct {
	client         *anthropic.Client
	model          string
	maxTokens      int
	retry          RetryConfig
	circuitBreaker *CircuitBreaker
	concurrencySem *semaphore.Weighted // Limits concurrent AI API calls
	limiter        *rate.Limiter       // Paces calls against API rate limits
	costTracker    CostTracker         // Optional budget enforcement
}

// Config holds supervisor configuration
type Config struct {
	APIKey      string      // Anthropic API key (if empty, reads from ANTHROPIC_API_KEY env var)
	Model       string      // Model to use (default: claude-sonnet-4-5-20250929)
	MaxTokens   int         // Response token cap per call (0 keeps the built-in cap)
	Retry       RetryConfig // Retry configuration (uses defaults if not specified)
	CostTracker CostTracker // Optional cost tracker for budget enforcement
}

// NewSupervisor creates a new AI supervisor
func NewSupervisor(cfg *Config) (*Supervisor, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY not set")
		}
	}

	model := cfg.Model
	if model == "" {
		model = GetDefaultModel()
	}

	// Use default retry config if not specified
	retry := cfg.Retry
	if retry.MaxRetries == 0 {
		retry = DefaultRetryConfig()
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	// Initialize circuit breaker if enabled
	var circuitBreaker *CircuitBreaker
	if retry.CircuitBreakerEnabled {
		circuitBreaker = NewCircuitBreaker(
			retry.FailureThreshold,
			retry.SuccessThreshold,
			retry.OpenTimeout,
		)
	}

	// Initialize concurrency limiter
	var concurrencySem *semaphore.Weighted
	if retry.MaxConcurrentCalls > 0 {
		concurrencySem = semaphore.NewWeighted(int64(retry.MaxConcurrentCalls))
	}

	// Initialize rate limiter
	var limiter *rate.Limiter
	if retry.CallsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(retry.CallsPerMinute)), rateLimitBurst)
	}

	return &Supervisor{
		client:         &client,
		model:          model,
		maxTokens:      cfg.MaxTokens,
		retry:          retry,
		circuitBreaker: circuitBreaker,
		concurrencySem: concurrencySem,
		limiter:        limiter,
		costTracker:    cfg.CostTracker,
	}, nil
}

// Model returns the model the supervisor uses when callers don't override it.
func (s *Supervisor) Model() string {
	return s.model
}

// HealthCheck performs a pre-flight check of the supervisor's health
// Returns an error if the circuit breaker is open
func (s *Supervisor) HealthCheck(ctx context.Context) error {
	if s.circuitBreaker != nil {
		state, failures, _ := s.circuitBreaker.GetMetrics()
		switch state {
		case CircuitOpen:
			return fmt.Errorf("AI supervisor unavailable: %w (failures=%d, retry in %v)",
				ErrCircuitOpen, failures, s.retry.OpenTimeout)
		case CircuitHalfOpen:
			// Allow execution in half-open state (probing for recovery)
			fmt.Printf("AI supervisor in half-open state (probing for recovery)\n")
		case CircuitClosed:
			// Normal operation
		}
	}
	return nil
}
