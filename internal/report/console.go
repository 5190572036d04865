// Package report renders classification results for terminals and for
// the markdown report written into the toolkit directory.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/codesweep/sweep/internal/classify"
)

// ConsoleOptions tunes the terminal renderer.
type ConsoleOptions struct {
	// Quiet reduces output to the verdict line
	Quiet bool

	// ShowClean lists clean and generated files too
	ShowClean bool

	// HideSize replaces the size-class line; tree scans have no staged
	// churn to classify
	HideSize bool
}

// RenderConsole writes the human-readable analysis to w.
func RenderConsole(w io.Writer, result *classify.Result, cs classify.ChangeSet, opts ConsoleOptions) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	if !opts.Quiet {
		fmt.Fprintln(w, cyan("🧹 Code Cleanup Analysis"))
		fmt.Fprintln(w, strings.Repeat("=", 40))

		generated := 0
		for _, rec := range result.FileRecords {
			if rec.IsGenerated {
				generated++
			}
		}

		fmt.Fprintf(w, "📁 Files staged: %d", len(result.FileRecords))
		if generated > 0 {
			fmt.Fprintf(w, " %s", gray(fmt.Sprintf("(%d generated)", generated)))
		}
		fmt.Fprintln(w)

		if opts.HideSize {
			fmt.Fprintf(w, "📏 Change size: %s\n", gray("n/a (tree scan)"))
		} else {
			size := green(string(result.SizeClass))
			if result.SizeClass != classify.SizeMinimal {
				size = yellow(string(result.SizeClass))
			}
			fmt.Fprintf(w, "📏 Change size: %s (%d changed lines)\n", size, cs.TotalLines())
		}
		fmt.Fprintf(w, "🐛 Issues found: %d\n", result.TotalIssues())

		for _, rec := range result.FileRecords {
			if rec.Flagged() {
				fmt.Fprintf(w, "\n%s", rec.Path)
				if rec.Language != "" {
					fmt.Fprintf(w, " %s", gray("("+rec.Language+")"))
				}
				fmt.Fprintln(w)
				for _, issue := range rec.Issues {
					fmt.Fprintf(w, "  %s %s\n", issueIcon(issue.Kind, yellow, red), formatIssue(issue))
				}
				continue
			}
			if opts.ShowClean {
				if rec.IsGenerated {
					fmt.Fprintf(w, "\n%s %s\n", rec.Path, gray("(generated, not scanned)"))
				} else {
					fmt.Fprintf(w, "\n%s %s\n", rec.Path, green("✓ clean"))
				}
			}
		}

		if len(result.SkippedFiles) > 0 {
			fmt.Fprintf(w, "\n%s\n", cyan("Skipped"))
			for _, skipped := range result.SkippedFiles {
				fmt.Fprintf(w, "  %s %s: %s\n", yellow("⚠"), skipped.Path, skipped.Reason)
			}
		}

		fmt.Fprintln(w)
	}

	if result.HasIssues {
		flagged := len(result.Flagged())
		fmt.Fprintf(w, "%s\n", yellow(fmt.Sprintf("🔍 %d file(s) need cleanup before committing", flagged)))
	} else {
		fmt.Fprintf(w, "%s\n", green("✨ No cleanup needed!"))
	}
}

func issueIcon(kind classify.IssueKind, yellow, red func(a ...interface{}) string) string {
	switch kind {
	case classify.IssueDebugStatement, classify.IssueDuplicateName:
		return red("✗")
	default:
		return yellow("⚠")
	}
}

func formatIssue(issue classify.Issue) string {
	if issue.Line > 0 {
		return fmt.Sprintf("%s at line %d: %s", issue.Kind, issue.Line, issue.Detail)
	}
	return fmt.Sprintf("%s: %s", issue.Kind, issue.Detail)
}
