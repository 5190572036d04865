package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codesweep/sweep/internal/ai"
	"github.com/codesweep/sweep/internal/classify"
	"github.com/codesweep/sweep/internal/cost"
	"github.com/codesweep/sweep/internal/history"
	"github.com/codesweep/sweep/internal/review"
)

var (
	cleanupModel     string
	cleanupMaxTokens int
	cleanupApply     bool
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Ask the model for concrete cleanup edits",
	Long: `Send the flagged files from the staged changes to the Anthropic API and
print the model's suggested edits.

Nothing on disk changes: --apply renders each suggestion as a diff of
the staged content, and applying it stays a human decision.

Requires ANTHROPIC_API_KEY. Spend is bounded by the per-run budget
(SWEEP_BUDGET_* environment variables).

Example:
  sweep cleanup
  sweep cleanup --model claude-3-5-haiku-20241022
  sweep cleanup --apply   # include per-suggestion diffs`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		g, root := resolveRepo(ctx)
		cfg := resolveConfig(root)

		changes, err := g.StagedChanges(ctx, root)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if changes.Empty() {
			fmt.Println("No staged changes to clean up")
			return
		}

		cs := classify.ChangeSet{
			Files:      changes.Paths(),
			Insertions: changes.Insertions,
			Deletions:  changes.Deletions,
		}

		classifier, err := classify.New(cfg.ToClassifyConfig())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		started := time.Now()
		result, err := classifier.Classify(ctx, root, cs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		green := color.New(color.FgGreen).SprintFunc()
		if !result.HasIssues {
			fmt.Printf("%s\n", green("✨ Nothing flagged; no suggestions needed"))
			recordRun(ctx, root, history.TriggerCleanup, cs, result, time.Since(started))
			return
		}

		model := cfg.AI.Model
		if cleanupModel != "" {
			model = cleanupModel
		}
		maxTokens := cfg.AI.MaxTokens
		if cleanupMaxTokens > 0 {
			maxTokens = cleanupMaxTokens
		}

		tracker, err := cost.NewTracker(cost.LoadFromEnv())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cost budget disabled: %v\n", err)
			tracker = nil
		}

		supCfg := &ai.Config{Model: model, MaxTokens: maxTokens}
		if tracker != nil {
			supCfg.CostTracker = tracker
		}
		sup, err := ai.NewSupervisor(supCfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		contents := make(map[string]string)
		for _, rec := range result.Flagged() {
			content, err := g.IndexContent(ctx, root, rec.Path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: cannot read staged %s: %v\n", rec.Path, err)
				continue
			}
			contents[rec.Path] = content
		}

		suggestions, err := sup.SuggestCleanups(ctx, result, contents)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		printSuggestions(suggestions, contents)

		if tracker != nil {
			stats := tracker.GetStats()
			gray := color.New(color.FgHiBlack).SprintFunc()
			fmt.Printf("\n%s\n", gray(fmt.Sprintf("AI usage: %d tokens ($%.4f) across %d call(s)",
				stats.TokensUsed, stats.CostUsed, stats.Calls)))
		}

		recordRun(ctx, root, history.TriggerCleanup, cs, result, time.Since(started))
	},
}

func init() {
	cleanupCmd.Flags().StringVar(&cleanupModel, "model", "", "Model to use (default from config)")
	cleanupCmd.Flags().IntVar(&cleanupMaxTokens, "max-tokens", 0, "Response token cap (default from config)")
	cleanupCmd.Flags().BoolVar(&cleanupApply, "apply", false, "Render each suggestion as a diff of the staged content")
	rootCmd.AddCommand(cleanupCmd)
}

// printSuggestions lists the model's proposed edits, with a diff per
// suggestion when --apply is set.
func printSuggestions(suggestions []ai.Suggestion, contents map[string]string) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	if len(suggestions) == 0 {
		fmt.Printf("%s\n", yellow("The model returned no usable suggestions"))
		return
	}

	fmt.Printf("\n%s\n", cyan("AI Cleanup Suggestions"))
	fmt.Println(strings.Repeat("=", 40))

	for _, sug := range suggestions {
		if sug.Line > 0 {
			fmt.Printf("\n%s:%d %s\n", sug.Path, sug.Line, gray("("+sug.Kind+")"))
		} else {
			fmt.Printf("\n%s %s\n", sug.Path, gray("("+sug.Kind+")"))
		}
		fmt.Printf("  %s\n", sug.Explanation)

		if cleanupApply {
			if diff := suggestionDiff(contents[sug.Path], sug); diff != "" {
				fmt.Print(indentLines(diff, "  "))
			}
		}
	}
}

// suggestionDiff renders the staged content against the suggestion
// applied to its line. File-level suggestions have nothing to diff.
func suggestionDiff(content string, sug ai.Suggestion) string {
	if sug.Line <= 0 || content == "" {
		return ""
	}

	lines := strings.Split(content, "\n")
	if sug.Line > len(lines) {
		return ""
	}

	modified := make([]string, 0, len(lines))
	modified = append(modified, lines[:sug.Line-1]...)
	if sug.Replacement != "" {
		modified = append(modified, sug.Replacement)
	}
	modified = append(modified, lines[sug.Line:]...)

	return review.RenderDiff(content, strings.Join(modified, "\n"))
}

func indentLines(text, prefix string) string {
	var sb strings.Builder
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		sb.WriteString(prefix + line + "\n")
	}
	return sb.String()
}
