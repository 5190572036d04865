package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/codesweep/sweep/internal/classify"
	"github.com/codesweep/sweep/internal/config"
	"github.com/codesweep/sweep/internal/history"
	"github.com/codesweep/sweep/internal/prompt"
	"github.com/codesweep/sweep/internal/report"
)

var (
	checkStrict    bool
	checkJSON      bool
	checkQuiet     bool
	checkNoContext bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Classify staged changes before a commit",
	Long: `Classify the staged changes: size the commit, flag debug statements,
deferred-work markers, oversized files, and duplicated function names,
and write cleanup context for AI assistants when something is flagged.

This is the command the managed pre-commit hook runs. Without --strict
(or strict: true in .sweep/config.yml) it reports and lets the commit
proceed.

Exit codes:
  0 - clean, or issues found with strict mode off
  1 - issues found with strict mode on, or the check could not run

Example:
  sweep check                 # what the hook runs
  sweep check --strict        # gate the commit on a clean result
  sweep check --json          # machine-readable result
  SKIP_CLEANUP=1 git commit   # bypass for one commit`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// The generated hook exits before reaching us when SKIP_CLEANUP
		// is set; honoring it here too covers direct invocations.
		if config.SkipRequested() {
			fmt.Println("Cleanup skipped via SKIP_CLEANUP environment variable")
			return
		}

		g, root := resolveRepo(ctx)
		cfg := resolveConfig(root)

		changes, err := g.StagedChanges(ctx, root)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if changes.Empty() {
			if !checkQuiet {
				fmt.Println("No staged changes to check")
			}
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

		if checkJSON {
			payload, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: failed to encode result: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(payload))
		} else {
			report.RenderConsole(os.Stdout, result, cs, report.ConsoleOptions{Quiet: checkQuiet})
		}

		if result.HasIssues && !checkNoContext {
			branch, _ := g.CurrentBranch(ctx, root)
			path, err := prompt.WriteContext(config.Dir(root), prompt.Context{
				Branch:      branch,
				Changes:     cs,
				Result:      result,
				GeneratedAt: time.Now(),
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to write cleanup context: %v\n", err)
			} else if !checkQuiet && !checkJSON {
				fmt.Printf("Cleanup context written to %s\n", path)
			}
		}

		recordRun(ctx, root, history.TriggerCheck, cs, result, time.Since(started))

		if result.HasIssues && (checkStrict || cfg.Strict) {
			os.Exit(1)
		}
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Exit non-zero when issues are found")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Emit the result as JSON")
	checkCmd.Flags().BoolVarP(&checkQuiet, "quiet", "q", false, "Only print the verdict line")
	checkCmd.Flags().BoolVar(&checkNoContext, "no-context", false, "Skip writing the cleanup context file")
	rootCmd.AddCommand(checkCmd)
}
