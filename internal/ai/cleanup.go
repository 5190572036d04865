package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/codesweep/sweep/internal/classify"
)

// Suggestion is a single model-proposed cleanup edit for a flagged file.
type Suggestion struct {
	Path        string `json:"path"`        // Repo-relative path of the flagged file
	Line        int    `json:"line"`        // 1-based line the edit applies to (0 = whole file)
	Kind        string `json:"kind"`        // Issue kind the suggestion addresses
	Explanation string `json:"explanation"` // Why the change is worth making
	Replacement string `json:"replacement"` // Proposed replacement text ("" = delete the line)
}

// maxExcerptBytes bounds how much of each flagged file is embedded in the prompt.
const maxExcerptBytes = 6000

// SuggestCleanups asks the model for concrete fixes for every flagged file
// in the result. contents maps repo-relative paths to staged file content;
// files without an entry are described by their issues alone.
//
// Returns nil without calling the API when nothing is flagged.
func (s *Supervisor) SuggestCleanups(ctx context.Context, result *classify.Result, contents map[string]string) ([]Suggestion, error) {
	flagged := result.Flagged()
	if len(flagged) == 0 {
		return nil, nil
	}

	prompt := buildCleanupPrompt(flagged, contents)

	// Each suggestion needs ~200 tokens, plus overhead
	maxTokens := result.TotalIssues()*200 + 500
	if maxTokens < 1000 {
		maxTokens = 1000
	}
	limit := s.maxTokens
	if limit <= 0 {
		limit = 4000
	}
	if maxTokens > limit {
		maxTokens = limit
	}

	responseText, err := s.CallAI(ctx, prompt, "cleanup_suggestions", s.model, maxTokens)
	if err != nil {
		return nil, fmt.Errorf("AI cleanup suggestions failed: %w", err)
	}

	// Parse response using resilient parser
	parseResult := Parse[[]Suggestion](responseText, ParseOptions{
		Context:   "cleanup suggestion response",
		LogErrors: true,
	})
	if !parseResult.Success {
		return nil, fmt.Errorf("failed to parse cleanup suggestions: %s (response: %s)",
			parseResult.Error, truncateString(responseText, 200))
	}

	return filterSuggestions(parseResult.Data, flagged)
}

// filterSuggestions validates model output against the files that were
// actually sent, dropping suggestions for paths we never flagged.
func filterSuggestions(suggestions []Suggestion, flagged []classify.FileRecord) ([]Suggestion, error) {
	known := make(map[string]bool, len(flagged))
	for _, rec := range flagged {
		known[rec.Path] = true
	}

	kept := make([]Suggestion, 0, len(suggestions))
	for i, sug := range suggestions {
		if sug.Line < 0 {
			return nil, fmt.Errorf("invalid line number in suggestion %d: %d", i, sug.Line)
		}
		if !known[sug.Path] {
			log.Printf("[WARN] Suggestion %d references unflagged path %q, dropping", i, sug.Path)
			continue
		}
		kept = append(kept, sug)
	}

	return kept, nil
}

// buildCleanupPrompt builds the AI prompt for cleanup suggestions
func buildCleanupPrompt(flagged []classify.FileRecord, contents map[string]string) string {
	var b strings.Builder

	b.WriteString(`You are reviewing files that were flagged by a pre-commit cleanliness check.
Propose the smallest concrete edits that resolve each flagged issue.

FLAGGED FILES:
`)

	for _, rec := range flagged {
		fmt.Fprintf(&b, "\nFile: %s\n", rec.Path)
		if rec.Language != "" {
			fmt.Fprintf(&b, "Language: %s\n", rec.Language)
		}
		b.WriteString("Issues:\n")
		for _, issue := range rec.Issues {
			if issue.Line > 0 {
				fmt.Fprintf(&b, "- %s at line %d: %s\n", issue.Kind, issue.Line, issue.Detail)
			} else {
				fmt.Fprintf(&b, "- %s: %s\n", issue.Kind, issue.Detail)
			}
		}
		if content, ok := contents[rec.Path]; ok && content != "" {
			excerpt := safeTruncateString(content, maxExcerptBytes)
			fmt.Fprintf(&b, "Content:\n<file>\n%s\n</file>\n", excerpt)
			if len(excerpt) < len(content) {
				b.WriteString("(content truncated)\n")
			}
		}
	}

	b.WriteString(`
TASK:
Propose one suggestion per issue. Debug statements should be removed
unless they are clearly intentional logging. TODO markers should become
actionable text or be resolved. For large files, suggest where to split.
For duplicate function names, propose a rename for one of the pair.

OUTPUT FORMAT (JSON only, no markdown):
[
  {
    "path": "relative/path.py",
    "line": 42,
    "kind": "debug-statement",
    "explanation": "Brief reason for the change",
    "replacement": "Replacement text, or empty string to delete the line"
  }
]

IMPORTANT:
1. Respond with ONLY a raw JSON array. Do NOT wrap it in markdown code fences.
2. Use line 0 for file-level suggestions (large-file, duplicate-function-name).
3. Only reference files listed above.
`)

	return b.String()
}
