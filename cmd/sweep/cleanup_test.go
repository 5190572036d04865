package main

import (
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/codesweep/sweep/internal/ai"
)

func init() {
	color.NoColor = true
}

func TestSuggestionDiff(t *testing.T) {
	content := "package main\nfmt.Println(\"debug\")\nreturn nil"

	t.Run("line replacement", func(t *testing.T) {
		sug := ai.Suggestion{
			Path:        "main.go",
			Line:        2,
			Kind:        "debug-statement",
			Replacement: "log.Debug(\"state\")",
		}
		diff := suggestionDiff(content, sug)
		if !strings.Contains(diff, "- fmt.Println(\"debug\")\n") {
			t.Errorf("diff should remove the flagged line, got:\n%s", diff)
		}
		if !strings.Contains(diff, "+ log.Debug(\"state\")\n") {
			t.Errorf("diff should add the replacement, got:\n%s", diff)
		}
	})

	t.Run("line deletion", func(t *testing.T) {
		sug := ai.Suggestion{Path: "main.go", Line: 2}
		diff := suggestionDiff(content, sug)
		if !strings.Contains(diff, "- fmt.Println(\"debug\")\n") {
			t.Errorf("diff should remove the flagged line, got:\n%s", diff)
		}
		if strings.Contains(diff, "+ ") {
			t.Errorf("deletion should add nothing, got:\n%s", diff)
		}
	})

	t.Run("whole-file suggestion has no diff", func(t *testing.T) {
		sug := ai.Suggestion{Path: "main.go", Line: 0, Replacement: "rewrite"}
		if diff := suggestionDiff(content, sug); diff != "" {
			t.Errorf("expected empty diff for line 0, got:\n%s", diff)
		}
	})

	t.Run("line beyond file has no diff", func(t *testing.T) {
		sug := ai.Suggestion{Path: "main.go", Line: 99, Replacement: "x"}
		if diff := suggestionDiff(content, sug); diff != "" {
			t.Errorf("expected empty diff past end of file, got:\n%s", diff)
		}
	})

	t.Run("missing content has no diff", func(t *testing.T) {
		sug := ai.Suggestion{Path: "main.go", Line: 1, Replacement: "x"}
		if diff := suggestionDiff("", sug); diff != "" {
			t.Errorf("expected empty diff without staged content, got:\n%s", diff)
		}
	})
}

func TestIndentLines(t *testing.T) {
	got := indentLines("a\nb\n", "  ")
	want := "  a\n  b\n"
	if got != want {
		t.Errorf("indentLines = %q, want %q", got, want)
	}

	if got := indentLines("single", "> "); got != "> single\n" {
		t.Errorf("indentLines = %q, want %q", got, "> single\n")
	}
}
