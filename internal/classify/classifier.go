package classify

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Classifier evaluates change sets against a compiled rule set. Safe
// for concurrent use; all state is immutable after New.
type Classifier struct {
	cfg     Config
	rules   *ruleSet
	workers int
}

// New compiles cfg into a Classifier. Any malformed glob or pattern is
// reported here, before classification runs.
func New(cfg Config) (*Classifier, error) {
	rules, err := cfg.compile()
	if err != nil {
		return nil, fmt.Errorf("invalid classifier configuration: %w", err)
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = min(8, runtime.NumCPU())
	}

	return &Classifier{cfg: cfg, rules: rules, workers: workers}, nil
}

// Classify evaluates cs against the working tree rooted at root and
// returns the per-file breakdown, the size class, and the skipped-file
// list. File scanning fans out across workers; records are assembled in
// input order, so the Result is deterministic for identical inputs.
//
// The only error returned is context cancellation. Per-file problems
// are absorbed into SkippedFiles per the advisory contract.
func (c *Classifier) Classify(ctx context.Context, root string, cs ChangeSet) (*Result, error) {
	scans := make([]fileScan, len(cs.Files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, rel := range cs.Files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			scans[i] = c.classifyFile(root, rel)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("classification aborted: %w", err)
	}

	result := &Result{
		SizeClass:   SizeStandard,
		FileRecords: make([]FileRecord, len(scans)),
	}

	declsPerFile := make([][]declaration, len(scans))
	nonGenerated := 0
	for i, scan := range scans {
		result.FileRecords[i] = scan.record
		declsPerFile[i] = scan.decls
		if scan.skipped != nil {
			result.SkippedFiles = append(result.SkippedFiles, *scan.skipped)
		}
		if !scan.record.IsGenerated {
			nonGenerated++
		}
	}

	resolveDuplicates(result.FileRecords, declsPerFile)

	for _, rec := range result.FileRecords {
		if rec.Flagged() {
			result.HasIssues = true
			break
		}
	}

	if nonGenerated <= c.cfg.MaxFiles && cs.TotalLines() <= c.cfg.MaxLines {
		result.SizeClass = SizeMinimal
	}

	return result, nil
}

// classifyFile runs the generated check and, when it misses, the
// content scan. Generated files short-circuit without touching disk
// beyond the sibling stat.
func (c *Classifier) classifyFile(root, rel string) fileScan {
	if c.isGenerated(root, rel) {
		return fileScan{record: FileRecord{Path: rel, IsGenerated: true}}
	}
	return c.scanFile(root, rel)
}
