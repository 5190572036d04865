package ai

import (
	"context"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/anthropics/anthropic-sdk-go"
)

// CallAI makes a generic AI API call with the given prompt.
// Every call passes through the retry loop, circuit breaker, semaphore,
// and rate limiter, and is gated and recorded by the cost tracker when
// one is configured.
func (s *Supervisor) CallAI(ctx context.Context, prompt string, operation string, model string, maxTokens int) (string, error) {
	startTime := time.Now()
	var responseText string

	// Use default model if not specified
	if model == "" {
		model = s.model
	}

	// Use default maxTokens if not specified
	if maxTokens == 0 {
		maxTokens = 4096
	}

	// Check the budget before spending tokens
	if s.costTracker != nil {
		if ok, reason := s.costTracker.Allow(operation); !ok {
			return "", fmt.Errorf("AI %s blocked by cost budget: %s", operation, reason)
		}
	}

	// Call Anthropic API with retry logic
	var response *anthropic.Message
	err := s.retryWithBackoff(ctx, operation, func(attemptCtx context.Context) error {
		resp, apiErr := s.client.Messages.New(attemptCtx, anthropic.MessageNewParams{
			Model:     anthropic.Model(model),
			MaxTokens: int64(maxTokens),
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
			},
		})
		if apiErr != nil {
			return apiErr
		}
		response = resp
		return nil
	})

	if err != nil {
		return "", fmt.Errorf("anthropic API call failed: %w", err)
	}

	// Extract the text content from the response
	for _, block := range response.Content {
		if block.Type == "text" {
			responseText += block.Text
		}
	}

	// Log the call
	duration := time.Since(startTime)
	fmt.Printf("AI %s call: input=%d tokens, output=%d tokens, duration=%v\n",
		operation, response.Usage.InputTokens, response.Usage.OutputTokens, duration)

	// Record usage with the budget tracker (don't fail the call on tracking errors)
	if s.costTracker != nil {
		if err := s.costTracker.RecordUsage(ctx, operation, response.Usage.InputTokens, response.Usage.OutputTokens); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to record AI usage: %v\n", err)
		}
	}

	return responseText, nil
}

// truncateString truncates a string to its last maxLen characters
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[len(s)-maxLen:]
}

// safeTruncateString truncates a string to maxLen bytes while preserving UTF-8 encoding
// If truncation would split a multi-byte UTF-8 sequence, it backs off to a valid boundary
func safeTruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}

	// Truncate at maxLen initially
	truncated := s[:maxLen]

	// Walk backwards to find a valid UTF-8 boundary
	// We only need to check up to 4 bytes back (max UTF-8 sequence length)
	for i := 0; i < 4 && len(truncated) > 0; i++ {
		// Check if we have valid UTF-8
		if utf8.ValidString(truncated) {
			return truncated
		}
		// Remove last byte and try again
		truncated = truncated[:len(truncated)-1]
	}

	// If we still don't have valid UTF-8 after 4 bytes, something is very wrong
	// Return empty string rather than corrupted data
	return ""
}
