package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codesweep/sweep/internal/hooks"
)

var hooksCmd = &cobra.Command{
	Use:   "hooks",
	Short: "Manage the git pre-commit hook",
	Long: `Install, remove, or inspect the managed pre-commit hook that runs
"sweep check" before every commit.

A pre-existing foreign hook is moved to pre-commit.backup on install
and restored on uninstall; sweep never overwrites a hook it does not
own.`,
}

var hooksInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the pre-commit hook",
	Run: func(cmd *cobra.Command, args []string) {
		mgr := hookManager()

		result, err := mgr.Install()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		green := color.New(color.FgGreen).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		if result.BackedUp {
			fmt.Printf("%s Existing pre-commit hook moved to %s.backup\n", yellow("⚠"), result.Path)
		}
		verb := "installed at"
		if result.Updated {
			verb = "refreshed at"
		}
		fmt.Printf("%s Pre-commit hook %s %s\n", green("✓"), verb, result.Path)
		fmt.Printf("  %s\n", gray("Commits now run \"sweep check\"; set SKIP_CLEANUP=1 to bypass once"))
	},
}

var hooksUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the pre-commit hook",
	Run: func(cmd *cobra.Command, args []string) {
		mgr := hookManager()

		result, err := mgr.Uninstall()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		green := color.New(color.FgGreen).SprintFunc()
		switch {
		case result.Restored:
			fmt.Printf("%s Managed hook removed; previous hook restored\n", green("✓"))
		case result.Removed:
			fmt.Printf("%s Pre-commit hook removed\n", green("✓"))
		default:
			fmt.Println("No managed pre-commit hook to remove")
		}
	},
}

var hooksStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the pre-commit hook state",
	Run: func(cmd *cobra.Command, args []string) {
		mgr := hookManager()

		status, err := mgr.Status()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		green := color.New(color.FgGreen).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		switch {
		case status.Installed:
			fmt.Printf("%s Managed hook installed at %s\n", green("✓"), status.Path)
			if !status.Executable {
				fmt.Printf("%s Hook is not executable; reinstall with \"sweep hooks install\"\n", yellow("⚠"))
			}
		case status.Foreign:
			fmt.Printf("%s A pre-commit hook exists at %s but is not managed by sweep\n", yellow("⚠"), status.Path)
			fmt.Printf("  %s\n", gray("\"sweep hooks install\" moves it to pre-commit.backup"))
		default:
			fmt.Println("No pre-commit hook installed")
			fmt.Printf("  %s\n", gray("Run \"sweep hooks install\" to add one"))
		}

		if status.HasBackup {
			fmt.Printf("  %s\n", gray("A backed-up foreign hook exists at "+status.Path+".backup"))
		}
	},
}

func init() {
	hooksCmd.AddCommand(hooksInstallCmd)
	hooksCmd.AddCommand(hooksUninstallCmd)
	hooksCmd.AddCommand(hooksStatusCmd)
	rootCmd.AddCommand(hooksCmd)
}

// hookManager resolves the repository's hooks directory, exiting on
// failure like the other command helpers.
func hookManager() *hooks.Manager {
	ctx := context.Background()
	g, root := resolveRepo(ctx)

	dir, err := g.HooksDir(ctx, root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return hooks.NewManager(dir)
}
