package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codesweep/sweep/internal/config"
	"github.com/codesweep/sweep/internal/git"
	"github.com/codesweep/sweep/internal/history"
	"github.com/codesweep/sweep/internal/hooks"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check sweep installation and environment health",
	Long: `Run health checks to diagnose common sweep configuration and environment issues.

This command checks for:
- Git availability
- Repository detection
- Pre-commit hook state
- Configuration validity
- AI credentials
- Run history database

Exit codes:
  0 - All checks passed
  1 - One or more checks failed (but not critical)
  2 - Critical failures that prevent sweep from running`,
	Run: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()

		fmt.Printf("Running sweep health checks...\n\n")

		var failures []string
		var warnings []string

		ctx := context.Background()

		// Check 1: Git availability
		fmt.Printf("%s Git availability\n", cyan("→"))
		g, err := git.NewGit(ctx)
		if err != nil {
			fmt.Printf("  %s git is not usable\n", red("✗"))
			if verbose {
				fmt.Printf("    Error: %v\n", err)
			}
			fmt.Printf("\n%s Critical failures prevent sweep from running\n", red("✗"))
			os.Exit(2)
		}
		fmt.Printf("  %s git found and working\n", green("✓"))

		// Check 2: Repository detection
		fmt.Printf("%s Repository detection\n", cyan("→"))
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Printf("  %s Cannot determine working directory\n", red("✗"))
			fmt.Printf("\n%s Critical failures prevent sweep from running\n", red("✗"))
			os.Exit(2)
		}
		root, err := g.RepoRoot(ctx, cwd)
		if err != nil {
			fmt.Printf("  %s Not inside a git repository\n", red("✗"))
			if verbose {
				fmt.Printf("    Error: %v\n", err)
			}
			fmt.Printf("    Hook, check, and history commands need a repository.\n")
			fmt.Printf("\n%s Critical failures prevent sweep from running\n", red("✗"))
			os.Exit(2)
		}
		fmt.Printf("  %s Repository root: %s\n", green("✓"), root)

		// Check 3: Pre-commit hook state
		fmt.Printf("%s Pre-commit hook\n", cyan("→"))
		hooksDir, err := g.HooksDir(ctx, root)
		if err != nil {
			failures = append(failures, fmt.Sprintf("Cannot locate hooks directory: %v", err))
			fmt.Printf("  %s Cannot locate hooks directory\n", red("✗"))
		} else {
			manager := hooks.NewManager(hooksDir)
			status, err := manager.Status()
			switch {
			case err != nil:
				failures = append(failures, fmt.Sprintf("Cannot inspect pre-commit hook: %v", err))
				fmt.Printf("  %s Cannot inspect pre-commit hook\n", red("✗"))
			case status.Installed && status.Executable:
				fmt.Printf("  %s Managed hook installed at %s\n", green("✓"), status.Path)
			case status.Installed:
				failures = append(failures, "Pre-commit hook is not executable")
				fmt.Printf("  %s Hook installed but not executable\n", red("✗"))
				fmt.Printf("    Run: sweep hooks install\n")
			case status.Foreign:
				warnings = append(warnings, "An unmanaged pre-commit hook is in place")
				fmt.Printf("  %s Unmanaged pre-commit hook present\n", yellow("⚠"))
				fmt.Printf("    'sweep hooks install' moves it to pre-commit.backup first\n")
			default:
				warnings = append(warnings, "No pre-commit hook installed")
				fmt.Printf("  %s No pre-commit hook installed\n", yellow("⚠"))
				fmt.Printf("    Run: sweep hooks install\n")
			}
			if status != nil && status.HasBackup && verbose {
				fmt.Printf("    A backed-up foreign hook exists at %s%s\n", status.Path, ".backup")
			}
			if err := manager.CheckPermissions(); err != nil {
				warnings = append(warnings, "Hooks directory is not writable")
				fmt.Printf("  %s Hooks directory is not writable\n", yellow("⚠"))
				if verbose {
					fmt.Printf("    Error: %v\n", err)
				}
			}
		}

		// Check 4: Configuration
		fmt.Printf("%s Configuration\n", cyan("→"))
		cfgPath := config.Path(root)
		if _, err := os.Stat(cfgPath); err != nil {
			fmt.Printf("  %s No config file, built-in defaults apply\n", green("✓"))
			if verbose {
				fmt.Printf("    Run 'sweep init' to write %s\n", cfgPath)
			}
		} else if cfg, err := config.Resolve(root); err != nil {
			failures = append(failures, fmt.Sprintf("Invalid configuration: %v", err))
			fmt.Printf("  %s Configuration is invalid\n", red("✗"))
			if verbose {
				fmt.Printf("    Error: %v\n", err)
			}
		} else {
			fmt.Printf("  %s Configuration loaded from %s\n", green("✓"), cfgPath)
			if cfg.Strict {
				fmt.Printf("    Mode: strict (flagged files block commits)\n")
			} else {
				fmt.Printf("    Mode: advisory (flagged files are reported, commits proceed)\n")
			}
		}

		// Check 5: AI credentials
		fmt.Printf("%s AI credentials\n", cyan("→"))
		if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey == "" {
			warnings = append(warnings, "ANTHROPIC_API_KEY not set")
			fmt.Printf("  %s ANTHROPIC_API_KEY not set\n", yellow("⚠"))
			fmt.Printf("    'sweep cleanup' will not work; check, scan, and report do not need it\n")
		} else {
			fmt.Printf("  %s ANTHROPIC_API_KEY is set\n", green("✓"))
			if verbose && len(apiKey) > 14 {
				fmt.Printf("    Key: %s...%s\n", apiKey[:10], apiKey[len(apiKey)-4:])
			}
		}

		// Check 6: Run history database
		fmt.Printf("%s Run history\n", cyan("→"))
		if store, err := history.Open(historyPath(root)); err != nil {
			warnings = append(warnings, fmt.Sprintf("Run history unavailable: %v", err))
			fmt.Printf("  %s Cannot open history database\n", yellow("⚠"))
			if verbose {
				fmt.Printf("    Error: %v\n", err)
			}
		} else {
			stats, err := store.Stats(ctx)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("Cannot query run history: %v", err))
				fmt.Printf("  %s Cannot query history database\n", yellow("⚠"))
			} else {
				fmt.Printf("  %s History database contains %d run(s)\n", green("✓"), stats.TotalRuns)
				if verbose && stats.TotalRuns > 0 {
					fmt.Printf("    First run: %s\n", stats.FirstRun.Format("2006-01-02 15:04"))
					fmt.Printf("    Last run:  %s\n", stats.LastRun.Format("2006-01-02 15:04"))
				}
			}
			store.Close()
		}

		// Summary
		fmt.Printf("\n%s\n", strings.Repeat("─", 60))

		if len(failures) == 0 && len(warnings) == 0 {
			fmt.Printf("%s All checks passed! sweep is ready.\n", green("✓"))
			os.Exit(0)
		}

		if len(failures) > 0 {
			fmt.Printf("\n%s Failures (%d):\n", red("✗"), len(failures))
			for _, failure := range failures {
				fmt.Printf("  • %s\n", failure)
			}
		}

		if len(warnings) > 0 {
			fmt.Printf("\n%s Warnings (%d):\n", yellow("⚠"), len(warnings))
			for _, warning := range warnings {
				fmt.Printf("  • %s\n", warning)
			}
		}

		if len(failures) > 0 {
			fmt.Printf("\n%s sweep may not work correctly. Please address the failures above.\n", yellow("⚠"))
			os.Exit(1)
		}

		fmt.Printf("\n%s sweep should work, but some warnings were detected.\n", green("✓"))
		os.Exit(0)
	},
}

func init() {
	doctorCmd.Flags().BoolP("verbose", "v", false, "Show detailed diagnostic information")
	rootCmd.AddCommand(doctorCmd)
}
