package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/codesweep/sweep/internal/classify"
)

// ReportFileName is the markdown report written into the toolkit
// directory.
const ReportFileName = "cleanup_report.md"

// Data carries everything the markdown report renders.
type Data struct {
	// Branch is the checked-out branch, empty when unknown
	Branch string

	Changes classify.ChangeSet
	Result  *classify.Result

	// Metrics are optional per-language line counts; nil omits the section
	Metrics map[string]LanguageMetrics

	GeneratedAt time.Time
}

// WriteMarkdown renders the report into dir and returns the written
// path.
func WriteMarkdown(dir string, data Data) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	path := filepath.Join(dir, ReportFileName)
	if err := os.WriteFile(path, []byte(RenderMarkdown(data)), 0644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

// RenderMarkdown builds the report document.
func RenderMarkdown(data Data) string {
	var sb strings.Builder
	result := data.Result

	sb.WriteString("# Code Cleanup Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n", data.GeneratedAt.Format(time.RFC3339)))
	if data.Branch != "" {
		sb.WriteString(fmt.Sprintf("Branch: %s\n", data.Branch))
	}
	sb.WriteString("\n## Summary\n\n")
	sb.WriteString("| | |\n")
	sb.WriteString("|---|---|\n")
	sb.WriteString(fmt.Sprintf("| Change size | %s |\n", result.SizeClass))
	sb.WriteString(fmt.Sprintf("| Files staged | %d |\n", len(result.FileRecords)))
	sb.WriteString(fmt.Sprintf("| Changed lines | %d |\n", data.Changes.TotalLines()))
	sb.WriteString(fmt.Sprintf("| Issues found | %d |\n", result.TotalIssues()))
	sb.WriteString(fmt.Sprintf("| Files skipped | %d |\n", len(result.SkippedFiles)))

	counts := result.IssueCounts()
	if len(counts) > 0 {
		sb.WriteString("\n## Issues by kind\n\n")
		kinds := make([]string, 0, len(counts))
		for kind := range counts {
			kinds = append(kinds, string(kind))
		}
		sort.Strings(kinds)
		for _, kind := range kinds {
			sb.WriteString(fmt.Sprintf("- %s: %d\n", kind, counts[classify.IssueKind(kind)]))
		}
	}

	flagged := result.Flagged()
	if len(flagged) > 0 {
		sb.WriteString("\n## Findings\n\n")
		for _, rec := range flagged {
			sb.WriteString(fmt.Sprintf("### %s\n\n", rec.Path))
			for _, issue := range rec.Issues {
				if issue.Line > 0 {
					sb.WriteString(fmt.Sprintf("- %s at line %d: `%s`\n", issue.Kind, issue.Line, issue.Detail))
				} else {
					sb.WriteString(fmt.Sprintf("- %s: %s\n", issue.Kind, issue.Detail))
				}
			}
			sb.WriteString("\n")
		}
	}

	if len(result.SkippedFiles) > 0 {
		sb.WriteString("## Skipped files\n\n")
		for _, skipped := range result.SkippedFiles {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", skipped.Path, skipped.Reason))
		}
		sb.WriteString("\n")
	}

	if len(data.Metrics) > 0 {
		sb.WriteString("## Metrics\n\n")
		sb.WriteString("| Language | Files | Code | Comments | Blanks |\n")
		sb.WriteString("|---|---|---|---|---|\n")
		languages := make([]string, 0, len(data.Metrics))
		for language := range data.Metrics {
			languages = append(languages, language)
		}
		sort.Strings(languages)
		for _, language := range languages {
			m := data.Metrics[language]
			sb.WriteString(fmt.Sprintf("| %s | %d | %d | %d | %d |\n",
				language, m.Files, m.Code, m.Comments, m.Blanks))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Cleanup Checklist\n\n")
	if len(flagged) == 0 {
		sb.WriteString("- [x] Nothing to clean up\n")
	} else {
		for _, rec := range flagged {
			sb.WriteString(fmt.Sprintf("- [ ] %s: resolve %d issue(s)\n", rec.Path, len(rec.Issues)))
		}
	}
	sb.WriteString("- [ ] Re-stage the touched files\n")
	sb.WriteString("- [ ] Re-run `sweep check`\n")

	return sb.String()
}
