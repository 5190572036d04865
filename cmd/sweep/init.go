package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codesweep/sweep/internal/config"
	"github.com/codesweep/sweep/internal/hooks"
)

var initHook bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the toolkit directory and default configuration",
	Long: `Create .sweep/ at the repository root with a documented default
config.yml. An existing configuration is left untouched.

With --hook, also install the managed pre-commit hook.

Example:
  sweep init
  sweep init --hook`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		g, root := resolveRepo(ctx)

		green := color.New(color.FgGreen).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		path := config.Path(root)
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Configuration already exists at %s\n", cyan(path))
		} else {
			if err := config.DefaultConfig().Save(path); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("\n%s Initialized sweep\n\n", green("✓"))
			fmt.Printf("  Config: %s\n", cyan(path))
		}

		if initHook {
			dir, err := g.HooksDir(ctx, root)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			result, err := hooks.NewManager(dir).Install()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("  Hook:   %s\n", cyan(result.Path))
		}

		fmt.Println()
		fmt.Printf("%s Next steps:\n", gray("→"))
		if !initHook {
			fmt.Printf("  %s\n", gray("sweep hooks install   # run the check before every commit"))
		}
		fmt.Printf("  %s\n", gray("sweep check           # classify what is staged right now"))
		fmt.Println()
	},
}

func init() {
	initCmd.Flags().BoolVar(&initHook, "hook", false, "Also install the pre-commit hook")
	rootCmd.AddCommand(initCmd)
}
