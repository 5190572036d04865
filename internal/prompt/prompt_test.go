package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codesweep/sweep/internal/classify"
)

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
					{Kind: classify.IssueTodoMarker, Line: 7, Detail: "TODO"},
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

func TestDetectVendors(t *testing.T) {
	tests := []struct {
		name    string
		markers []string
		want    []Vendor
	}{
		{"no markers", nil, []Vendor{VendorGeneric}},
		{"claude file", []string{"CLAUDE.md"}, []Vendor{VendorClaude}},
		{"lowercase claude file", []string{"claude.md"}, []Vendor{VendorClaude}},
		{"cursor rules", []string{".cursorrules"}, []Vendor{VendorCursor}},
		{"cursor dir", []string{".cursor/"}, []Vendor{VendorCursor}},
		{"codex dir", []string{".codex/"}, []Vendor{VendorCodex}},
		{"roo dir", []string{".roo/"}, []Vendor{VendorRoo}},
		{"warp dir", []string{".warp/"}, []Vendor{VendorWarp}},
		{
			"multiple assistants keep a stable order",
			[]string{".warp/", "CLAUDE.md", ".cursorrules"},
			[]Vendor{VendorClaude, VendorCursor, VendorWarp},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for _, marker := range tt.markers {
				if strings.HasSuffix(marker, "/") {
					require.NoError(t, os.Mkdir(filepath.Join(root, strings.TrimSuffix(marker, "/")), 0755))
				} else {
					require.NoError(t, os.WriteFile(filepath.Join(root, marker), []byte("x"), 0644))
				}
			}

			assert.Equal(t, tt.want, DetectVendors(root))
		})
	}
}

func TestRenderContext(t *testing.T) {
	ctx := Context{
		Branch: "feature/cleanup",
		Changes: classify.ChangeSet{
			Files:      []string{"main.py", "utils.py", "dist/app.min.js", "gone.py"},
			Insertions: 30,
			Deletions:  5,
		},
		Result:      sampleResult(),
		GeneratedAt: time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC),
	}

	content := RenderContext(ctx)

	assert.Contains(t, content, "# Cleanup Context")
	assert.Contains(t, content, "Branch: feature/cleanup")
	assert.Contains(t, content, "standard (4 files, 35 changed lines)")
	assert.Contains(t, content, "main.py: 2 issue(s)")
	assert.Contains(t, content, "debug-statement (line 3)")
	assert.Contains(t, content, "utils.py: clean")
	assert.Contains(t, content, "dist/app.min.js: generated, not scanned")
	assert.Contains(t, content, "gone.py: missing from working tree")
}

func TestWriteContext(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".sweep")

	path, err := WriteContext(dir, Context{
		Result:      sampleResult(),
		GeneratedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ContextFileName), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# Cleanup Context")
}

func TestBuildThreePromptSet(t *testing.T) {
	prompts := Build(VendorClaude, sampleResult())
	require.Len(t, prompts, 3)

	assert.Equal(t, "Initial Analysis Prompt", prompts[0].Title)
	assert.Equal(t, "Systematic Cleanup Prompt", prompts[1].Title)
	assert.Equal(t, "Verification Prompt", prompts[2].Title)

	for _, p := range prompts {
		assert.Contains(t, p.Body, "main.py (python):")
		assert.Contains(t, p.Body, "debug-statement at line 3")
		assert.NotContains(t, p.Body, "utils.py (", "clean files do not belong in prompts")
	}
}

func TestBuildWarpPromptSet(t *testing.T) {
	prompts := Build(VendorWarp, sampleResult())
	require.Len(t, prompts, 2)

	assert.Equal(t, "Analysis Prompt", prompts[0].Title)
	assert.Equal(t, "Cleanup Execution Prompt", prompts[1].Title)
}

func TestBuildWithNothingFlagged(t *testing.T) {
	clean := &classify.Result{
		SizeClass:   classify.SizeMinimal,
		FileRecords: []classify.FileRecord{{Path: "ok.go", Language: "go", LineCount: 5}},
	}

	prompts := Build(VendorGeneric, clean)
	require.NotEmpty(t, prompts)
	assert.Contains(t, prompts[0].Body, "No issues were flagged")
}

func TestWritePrompts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".sweep")

	path, err := WritePrompts(dir, VendorClaude, Build(VendorClaude, sampleResult()))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "claude-prompts.txt"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "## Initial Analysis Prompt")
	assert.Contains(t, string(content), "## Verification Prompt")
	assert.Contains(t, string(content), "\n---\n")
}
