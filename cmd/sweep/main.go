// Command sweep keeps debug statements, deferred-work markers, and
// oversized changes out of commits. It runs as the managed git
// pre-commit hook and as a standalone audit tool.
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
)

var rootCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Pre-commit change classifier and cleanup assistant",
	Long: `Sweep classifies staged changes before they land: it sizes the change,
flags debug statements, deferred-work markers, oversized files, and
duplicated function names, and prepares cleanup context for AI coding
assistants.

Run "sweep hooks install" once per repository to wire it into git, or
invoke the commands directly.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveRepo locates the git binary and the enclosing repository root.
// Commands that cannot run without either exit through here.
func resolveRepo(ctx context.Context) (*git.Git, string) {
	g, err := git.NewGit(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to get current directory: %v\n", err)
		os.Exit(1)
	}

	root, err := g.RepoRoot(ctx, cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: not inside a git repository\n")
		os.Exit(1)
	}
	return g, root
}

// resolveConfig loads the repository configuration with environment
// overrides applied.
func resolveConfig(repoRoot string) *config.Config {
	cfg, err := config.Resolve(repoRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// historyPath returns the run-log database location for a repository.
func historyPath(repoRoot string) string {
	return filepath.Join(config.Dir(repoRoot), history.FileName)
}

// recordRun appends the run to the local history database. Persistence
// is advisory: failures warn and never change the command's outcome.
func recordRun(ctx context.Context, repoRoot, trigger string, cs classify.ChangeSet, result *classify.Result, elapsed time.Duration) {
	store, err := history.Open(historyPath(repoRoot))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: run history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	if err := store.RecordRun(ctx, history.NewRun(trigger, cs, result, elapsed)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to record run history: %v\n", err)
	}
}
