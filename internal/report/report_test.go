package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codesweep/sweep/internal/classify"
)

func plainColors(t *testing.T) {
	t.Helper()
	previous := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = previous })
}

func sampleResult() *classify.Result {
	return &classify.Result{
		SizeClass: classify.SizeStandard,
		HasIssues: true,
		FileRecords: []classify.FileRecord{
			{
				Path:      "main.py",
				Language:  "python",
				LineCount: 40,
				Issues: []classify.Issue{
					{Kind: classify.IssueDebugStatement, Line: 3, Detail: `print("debug")`},
					{Kind: classify.IssueLargeFile, Detail: "240 lines"},
				},
			},
			{Path: "utils.py", Language: "python", LineCount: 12},
			{Path: "dist/app.min.js", IsGenerated: true},
		},
		SkippedFiles: []classify.SkippedFile{
			{Path: "gone.py", Reason: "missing from working tree"},
		},
	}
}

func sampleChanges() classify.ChangeSet {
	return classify.ChangeSet{
		Files:      []string{"main.py", "utils.py", "dist/app.min.js", "gone.py"},
		Insertions: 30,
		Deletions:  5,
	}
}

func TestRenderConsole(t *testing.T) {
	plainColors(t)

	var buf bytes.Buffer
	RenderConsole(&buf, sampleResult(), sampleChanges(), ConsoleOptions{})
	out := buf.String()

	assert.Contains(t, out, "🧹 Code Cleanup Analysis")
	assert.Contains(t, out, "Files staged: 3")
	assert.Contains(t, out, "(1 generated)")
	assert.Contains(t, out, "Change size: standard (35 changed lines)")
	assert.Contains(t, out, "Issues found: 2")
	assert.Contains(t, out, "main.py")
	assert.Contains(t, out, "debug-statement at line 3")
	assert.Contains(t, out, "large-file: 240 lines")
	assert.Contains(t, out, "gone.py: missing from working tree")
	assert.Contains(t, out, "1 file(s) need cleanup")

	// Clean files stay hidden without ShowClean
	assert.NotContains(t, out, "utils.py")
}

func TestRenderConsoleQuiet(t *testing.T) {
	plainColors(t)

	var buf bytes.Buffer
	RenderConsole(&buf, sampleResult(), sampleChanges(), ConsoleOptions{Quiet: true})
	out := buf.String()

	assert.NotContains(t, out, "Code Cleanup Analysis")
	assert.Contains(t, out, "need cleanup")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestRenderConsoleShowClean(t *testing.T) {
	plainColors(t)

	var buf bytes.Buffer
	RenderConsole(&buf, sampleResult(), sampleChanges(), ConsoleOptions{ShowClean: true})
	out := buf.String()

	assert.Contains(t, out, "utils.py ✓ clean")
	assert.Contains(t, out, "dist/app.min.js (generated, not scanned)")
}

func TestRenderConsoleCleanResult(t *testing.T) {
	plainColors(t)

	result := &classify.Result{
		SizeClass:   classify.SizeMinimal,
		FileRecords: []classify.FileRecord{{Path: "ok.go", Language: "go", LineCount: 4}},
	}

	var buf bytes.Buffer
	RenderConsole(&buf, result, classify.ChangeSet{Files: []string{"ok.go"}, Insertions: 4}, ConsoleOptions{})

	assert.Contains(t, buf.String(), "✨ No cleanup needed!")
}

func TestRenderMarkdown(t *testing.T) {
	data := Data{
		Branch:  "feature/cleanup",
		Changes: sampleChanges(),
		Result:  sampleResult(),
		Metrics: map[string]LanguageMetrics{
			"Python": {Files: 2, Code: 40, Comments: 6, Blanks: 6},
		},
		GeneratedAt: time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC),
	}

	out := RenderMarkdown(data)

	assert.Contains(t, out, "# Code Cleanup Report")
	assert.Contains(t, out, "Branch: feature/cleanup")
	assert.Contains(t, out, "| Files staged | 3 |")
	assert.Contains(t, out, "| Changed lines | 35 |")
	assert.Contains(t, out, "- debug-statement: 1")
	assert.Contains(t, out, "### main.py")
	assert.Contains(t, out, "`print(\"debug\")`")
	assert.Contains(t, out, "| Python | 2 | 40 | 6 | 6 |")
	assert.Contains(t, out, "## Cleanup Checklist")
	assert.Contains(t, out, "- [ ] main.py: resolve 2 issue(s)")
	assert.Contains(t, out, "- [ ] Re-run `sweep check`")
}

func TestRenderMarkdownCleanChecklist(t *testing.T) {
	data := Data{
		Result: &classify.Result{
			SizeClass:   classify.SizeMinimal,
			FileRecords: []classify.FileRecord{{Path: "ok.go", Language: "go"}},
		},
		GeneratedAt: time.Now(),
	}

	out := RenderMarkdown(data)
	assert.Contains(t, out, "- [x] Nothing to clean up")
}

func TestWriteMarkdown(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".sweep")

	path, err := WriteMarkdown(dir, Data{
		Changes:     sampleChanges(),
		Result:      sampleResult(),
		GeneratedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ReportFileName), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# Code Cleanup Report")
}

func TestComputeMetrics(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(root, "main.py"),
		[]byte("# entry\n\nprint('hi')\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "util.go"),
		[]byte("package util\n\n// Add adds.\nfunc Add(a, b int) int { return a + b }\n"), 0644))

	result := &classify.Result{
		FileRecords: []classify.FileRecord{
			{Path: "main.py", Language: "python"},
			{Path: "util.go", Language: "go"},
			{Path: "dist/app.min.js", IsGenerated: true},
			{Path: "gone.py", Language: "python"},
		},
	}

	metrics, err := ComputeMetrics(root, result)
	require.NoError(t, err)

	totalFiles := 0
	for _, m := range metrics {
		totalFiles += m.Files
	}
	assert.Equal(t, 2, totalFiles, "generated and missing files are not counted")

	python, ok := metrics["Python"]
	require.True(t, ok, "expected Python metrics, got %v", metrics)
	assert.Equal(t, 1, python.Files)
	assert.Equal(t, 1, python.Code)
	assert.Equal(t, 1, python.Comments)
	assert.Equal(t, 1, python.Blanks)
}

func TestComputeMetricsNothingToCount(t *testing.T) {
	metrics, err := ComputeMetrics(t.TempDir(), &classify.Result{
		FileRecords: []classify.FileRecord{{Path: "gen.map", IsGenerated: true}},
	})
	require.NoError(t, err)
	assert.Empty(t, metrics)
}
