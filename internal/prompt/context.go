package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/codesweep/sweep/internal/classify"
)

// ContextFileName is the cleanup context written before each commit.
const ContextFileName = "cleanup-context.md"

// Context carries everything the context file renders.
type Context struct {
	// Branch is the checked-out branch, empty when unknown
	Branch string

	Changes classify.ChangeSet
	Result  *classify.Result

	GeneratedAt time.Time
}

// WriteContext renders the cleanup context into dir and returns the
// written path. The file is regenerated on every check, so it is safe
// to overwrite.
func WriteContext(dir string, ctx Context) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating context directory: %w", err)
	}

	path := filepath.Join(dir, ContextFileName)
	if err := os.WriteFile(path, []byte(RenderContext(ctx)), 0644); err != nil {
		return "", fmt.Errorf("writing cleanup context: %w", err)
	}
	return path, nil
}

// RenderContext builds the context document shown to AI assistants.
func RenderContext(ctx Context) string {
	var sb strings.Builder

	sb.WriteString("# Cleanup Context\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n", ctx.GeneratedAt.Format(time.RFC3339)))
	if ctx.Branch != "" {
		sb.WriteString(fmt.Sprintf("Branch: %s\n", ctx.Branch))
	}
	sb.WriteString(fmt.Sprintf("Change size: %s (%d files, %d changed lines)\n\n",
		ctx.Result.SizeClass, len(ctx.Changes.Files), ctx.Changes.TotalLines()))

	sb.WriteString("## Staged files\n\n")
	if len(ctx.Result.FileRecords) == 0 {
		sb.WriteString("No staged files found.\n\n")
	}
	for _, rec := range ctx.Result.FileRecords {
		switch {
		case rec.IsGenerated:
			sb.WriteString(fmt.Sprintf("- %s: generated, not scanned\n", rec.Path))
		case !rec.Flagged():
			sb.WriteString(fmt.Sprintf("- %s: clean\n", rec.Path))
		default:
			sb.WriteString(fmt.Sprintf("- %s: %d issue(s)\n", rec.Path, len(rec.Issues)))
			for _, issue := range rec.Issues {
				if issue.Line > 0 {
					sb.WriteString(fmt.Sprintf("  - %s (line %d): %s\n", issue.Kind, issue.Line, issue.Detail))
				} else {
					sb.WriteString(fmt.Sprintf("  - %s: %s\n", issue.Kind, issue.Detail))
				}
			}
		}
	}
	sb.WriteString("\n")

	if len(ctx.Result.SkippedFiles) > 0 {
		sb.WriteString("## Skipped\n\n")
		for _, skipped := range ctx.Result.SkippedFiles {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", skipped.Path, skipped.Reason))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Suggested workflow\n\n")
	sb.WriteString("1. Remove or downgrade every flagged debug statement.\n")
	sb.WriteString("2. Resolve deferred-work markers or move them to the issue tracker.\n")
	sb.WriteString("3. Consolidate duplicated function names into shared helpers.\n")
	sb.WriteString("4. Re-stage the touched files and run the check again.\n")

	return sb.String()
}
