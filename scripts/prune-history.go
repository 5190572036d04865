// scripts/prune-history.go - Manual run-history pruning tool
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/codesweep/sweep/internal/history"
)

func main() {
	ctx := context.Background()

	// Default to the history database in the current repository
	dbPath := ".sweep/" + history.FileName

	// Allow override via environment variable
	if path := os.Getenv("SWEEP_HISTORY_PATH"); path != "" {
		dbPath = path
	}

	fmt.Printf("Opening history database: %s\n", dbPath)

	store, err := history.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// Prune runs older than 30 days (matching the prune command default)
	cutoff := time.Now().AddDate(0, 0, -30)

	fmt.Printf("Pruning runs recorded before %s...\n", cutoff.Format("2006-01-02"))

	removed, err := store.PruneBefore(ctx, cutoff)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error during prune: %v\n", err)
		os.Exit(1)
	}

	if removed > 0 {
		fmt.Printf("✓ Removed %d run(s) and reclaimed their rows\n", removed)
	} else {
		fmt.Println("✓ No runs older than the cutoff")
	}
}
