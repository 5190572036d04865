package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codesweep/sweep/internal/classify"
	"github.com/codesweep/sweep/internal/report"
)

var reportMetrics bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the cleanup report for the staged changes",
	Long: `Classify the staged changes and write cleanup_report.md into the report
directory (.sweep by default).

Per-language line counts are included when report.metrics is enabled in
the configuration; --metrics overrides the configured value either way.

Example:
  sweep report
  sweep report --metrics=false`,
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
			fmt.Println("No staged changes to report on")
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
		result, err := classifier.Classify(ctx, root, cs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		withMetrics := cfg.Report.Metrics
		if cmd.Flags().Changed("metrics") {
			withMetrics = reportMetrics
		}

		var metrics map[string]report.LanguageMetrics
		if withMetrics {
			metrics, err = report.ComputeMetrics(root, result)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: metrics unavailable: %v\n", err)
				metrics = nil
			}
		}

		branch, _ := g.CurrentBranch(ctx, root)
		dir := filepath.Join(root, cfg.Report.Directory)
		path, err := report.WriteMarkdown(dir, report.Data{
			Branch:      branch,
			Changes:     cs,
			Result:      result,
			Metrics:     metrics,
			GeneratedAt: time.Now(),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Report written to %s\n", green("✓"), path)
	},
}

func init() {
	reportCmd.Flags().BoolVar(&reportMetrics, "metrics", true, "Include per-language line counts")
	rootCmd.AddCommand(reportCmd)
}
