package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hhatto/gocloc"

	"github.com/codesweep/sweep/internal/classify"
)

// LanguageMetrics aggregates line counts for one language across the
// scanned files.
type LanguageMetrics struct {
	Files    int
	Code     int
	Comments int
	Blanks   int
}

// ComputeMetrics runs the line counter over the non-generated staged
// files that still exist on disk. An empty map is returned when there
// is nothing to count.
func ComputeMetrics(root string, result *classify.Result) (map[string]LanguageMetrics, error) {
	var paths []string
	for _, rec := range result.FileRecords {
		if rec.IsGenerated {
			continue
		}
		path := filepath.Join(root, filepath.FromSlash(rec.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			paths = append(paths, path)
		}
	}
	if len(paths) == 0 {
		return map[string]LanguageMetrics{}, nil
	}

	languages := gocloc.NewDefinedLanguages()
	options := gocloc.NewClocOptions()

	processor := gocloc.NewProcessor(languages, options)
	loc, err := processor.Analyze(paths)
	if err != nil {
		return nil, fmt.Errorf("computing lines of code: %w", err)
	}

	metrics := make(map[string]LanguageMetrics)
	for name, language := range loc.Languages {
		if len(language.Files) == 0 {
			continue
		}
		metrics[name] = LanguageMetrics{
			Files:    len(language.Files),
			Code:     int(language.Code),
			Comments: int(language.Comments),
			Blanks:   int(language.Blanks),
		}
	}
	return metrics, nil
}
