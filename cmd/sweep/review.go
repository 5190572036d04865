package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codesweep/sweep/internal/classify"
	"github.com/codesweep/sweep/internal/prompt"
	"github.com/codesweep/sweep/internal/review"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Step through flagged files interactively",
	Long: `Open an interactive session over the files the check flagged. Each
file shows its issues and the staged diff against HEAD; 'prompt' prints
a ready-to-paste assistant prompt scoped to the file under review.

The session is read-only: it never edits files or the index.

Example:
  sweep review`,
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
			fmt.Println("No staged changes to review")
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

		flagged := result.Flagged()
		if len(flagged) == 0 {
			green := color.New(color.FgGreen).SprintFunc()
			fmt.Printf("%s\n", green("✨ Nothing to review!"))
			return
		}

		items := make([]review.Item, 0, len(flagged))
		for _, rec := range flagged {
			// New files have no HEAD version; an empty base renders the
			// whole staged file as insertions.
			head, _ := g.HeadContent(ctx, root, rec.Path)
			index, _ := g.IndexContent(ctx, root, rec.Path)
			items = append(items, review.Item{
				Record:       rec,
				HeadContent:  head,
				IndexContent: index,
			})
		}

		session, err := review.New(&review.Config{
			Items:  items,
			Vendor: prompt.DetectVendors(root)[0],
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if err := session.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}
