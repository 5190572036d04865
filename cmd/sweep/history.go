package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codesweep/sweep/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past classification runs",
	Long: `List the runs recorded in .sweep/history.db, newest first, with a
lifetime summary.

Recording is advisory: commands that cannot open the database warn and
succeed anyway, so an empty history only means no run has been recorded
here yet.

Example:
  sweep history
  sweep history --limit 50
  sweep history prune --days 30`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		_, root := resolveRepo(ctx)

		store, err := history.Open(historyPath(root))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		runs, err := store.ListRuns(ctx, historyLimit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded yet")
			return
		}

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		fmt.Printf("\n%s\n\n", cyan("Run History"))
		for _, run := range runs {
			issues := run.DebugStatements + run.TodoMarkers + run.LargeFiles + run.DuplicateNames
			verdict := green("clean")
			if run.FilesFlagged > 0 {
				verdict = yellow(fmt.Sprintf("%d flagged", run.FilesFlagged))
			}
			fmt.Printf("  %s  %-7s %-8s %3d files %3d issues  %s\n",
				run.RecordedAt.Format("2006-01-02 15:04"),
				run.Trigger, run.SizeClass, run.FilesTotal, issues, verdict)
		}

		stats, err := store.Stats(ctx)
		if err == nil && stats.TotalRuns > 0 {
			fmt.Printf("\n%s\n", gray(fmt.Sprintf("%d runs since %s (%d clean), %d files seen, %d flagged",
				stats.TotalRuns, stats.FirstRun.Format("2006-01-02"),
				stats.CleanRuns, stats.FilesSeen, stats.FilesFlagged)))
		}
		fmt.Println()
	},
}

var historyPruneDays int

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete runs older than a cutoff",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		_, root := resolveRepo(ctx)

		if historyPruneDays <= 0 {
			fmt.Fprintf(os.Stderr, "Error: --days must be positive (got %d)\n", historyPruneDays)
			os.Exit(1)
		}

		store, err := history.Open(historyPath(root))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		cutoff := time.Now().AddDate(0, 0, -historyPruneDays)
		removed, err := store.PruneBefore(ctx, cutoff)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Removed %d run(s) older than %d days\n", green("✓"), removed, historyPruneDays)
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Most recent runs to show (0 shows all)")
	historyPruneCmd.Flags().IntVar(&historyPruneDays, "days", 30, "Delete runs older than this many days")
	historyCmd.AddCommand(historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}
