package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/codesweep/sweep/internal/classify"
	"github.com/codesweep/sweep/internal/config"
	"github.com/codesweep/sweep/internal/git"
	"github.com/codesweep/sweep/internal/history"
	"github.com/codesweep/sweep/internal/report"
	"github.com/codesweep/sweep/internal/scan"
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Audit a whole tree without a commit",
	Long: `Walk a directory tree and run the same per-file checks the pre-commit
hook runs, without needing staged changes. The walk honors the root
.gitignore and skips generated directories, so it covers the files a
commit could actually touch.

Size classification needs staged line counts, so tree scans report the
change size as n/a.

Example:
  sweep scan              # audit the current directory
  sweep scan ./services   # audit a subtree`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		target := "."
		if len(args) > 0 {
			target = args[0]
		}
		target, err := filepath.Abs(target)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		// Use the enclosing repository's configuration when there is
		// one; a bare directory gets the defaults. History is only
		// recorded inside a repository.
		cfg := config.DefaultConfig()
		repoRoot := ""
		if g, gitErr := git.NewGit(ctx); gitErr == nil && g.IsRepo(ctx, target) {
			if root, rootErr := g.RepoRoot(ctx, target); rootErr == nil {
				repoRoot = root
				cfg = resolveConfig(root)
			}
		}

		cs, err := scan.Walk(target, cfg.ToClassifyConfig())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(cs.Files) == 0 {
			fmt.Println("No files to scan")
			return
		}

		classifier, err := classify.New(cfg.ToClassifyConfig())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		started := time.Now()
		result, err := classifier.Classify(ctx, target, cs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		report.RenderConsole(os.Stdout, result, cs, report.ConsoleOptions{HideSize: true})

		if repoRoot != "" {
			recordRun(ctx, repoRoot, history.TriggerScan, cs, result, time.Since(started))
		}
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
