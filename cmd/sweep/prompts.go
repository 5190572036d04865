package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codesweep/sweep/internal/classify"
	"github.com/codesweep/sweep/internal/prompt"
)

var promptsVendor string

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Write ready-to-paste cleanup prompts",
	Long: `Render the cleanup prompt set for the AI assistants configured in the
repository and write the files into the report directory (.sweep by
default).

Without --vendor, every assistant detected at the repository root gets
a file: CLAUDE.md selects claude, .cursorrules selects cursor, and so
on, with a generic set when nothing is detected.

Example:
  sweep prompts                   # one file per detected assistant
  sweep prompts --vendor claude   # force a single vendor`,
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
			fmt.Println("No staged changes to build prompts from")
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

		vendors := prompt.DetectVendors(root)
		if promptsVendor != "" {
			vendor, err := prompt.ParseVendor(promptsVendor)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			vendors = []prompt.Vendor{vendor}
		}

		green := color.New(color.FgGreen).SprintFunc()
		dir := filepath.Join(root, cfg.Report.Directory)
		for _, vendor := range vendors {
			path, err := prompt.WritePrompts(dir, vendor, prompt.Build(vendor, result))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("%s %s prompts written to %s\n", green("✓"), vendor, path)
		}
	},
}

func init() {
	promptsCmd.Flags().StringVar(&promptsVendor, "vendor", "", "Write prompts for one vendor (claude, cursor, codex, roo, warp, generic)")
	rootCmd.AddCommand(promptsCmd)
}
