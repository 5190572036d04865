package review

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/codesweep/sweep/internal/classify"
	"github.com/codesweep/sweep/internal/prompt"
)

func testItems() []Item {
	return []Item{
		{
			Record: classify.FileRecord{
				Path:      "cmd/serve.go",
				Language:  "go",
				LineCount: 80,
				Issues: []classify.Issue{
					{Kind: classify.IssueDebugStatement, Line: 12, Detail: `fmt.Println("here")`},
				},
			},
			HeadContent:  "package main\n\nfunc main() {\n}\n",
			IndexContent: "package main\n\nfunc main() {\n\tfmt.Println(\"here\")\n}\n",
		},
		{
			Record: classify.FileRecord{
				Path:      "internal/worker/pool.go",
				Language:  "go",
				LineCount: 950,
				Issues: []classify.Issue{
					{Kind: classify.IssueLargeFile, Detail: "950 lines"},
					{Kind: classify.IssueTodoMarker, Line: 4, Detail: "TODO: split this up"},
				},
			},
			HeadContent:  "a\nb\n",
			IndexContent: "a\nb\nc\n",
		},
	}
}

func newTestSession(t *testing.T) (*Session, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	s, err := New(&Config{Items: testItems(), Out: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s, &buf
}

func TestNew(t *testing.T) {
	t.Run("rejects empty queue", func(t *testing.T) {
		_, err := New(&Config{})
		if err == nil {
			t.Fatal("expected error for empty item list")
		}
	})

	t.Run("defaults vendor to generic", func(t *testing.T) {
		s, _ := newTestSession(t)
		if s.vendor != prompt.VendorGeneric {
			t.Errorf("expected generic vendor, got %q", s.vendor)
		}
	})
}

func TestProcessInput(t *testing.T) {
	s, buf := newTestSession(t)

	if err := s.processInput("bogus"); err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("expected unknown command error, got %v", err)
	}

	if err := s.processInput("list"); err != nil {
		t.Errorf("list failed: %v", err)
	}
	if !strings.Contains(buf.String(), "cmd/serve.go") {
		t.Errorf("list output missing file, got %q", buf.String())
	}
}

func TestCmdList(t *testing.T) {
	s, buf := newTestSession(t)

	if err := s.cmdList(nil); err != nil {
		t.Fatalf("cmdList failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, ">  1. cmd/serve.go") {
		t.Errorf("expected current marker on first item, got %q", out)
	}
	if !strings.Contains(out, "1 issues") || !strings.Contains(out, "2 issues") {
		t.Errorf("expected issue counts, got %q", out)
	}
	if strings.Count(out, "[pending]") != 2 {
		t.Errorf("expected both items pending, got %q", out)
	}
}

func TestCmdShow(t *testing.T) {
	t.Run("rejects out of range", func(t *testing.T) {
		s, _ := newTestSession(t)
		for _, arg := range []string{"0", "3", "x"} {
			if err := s.cmdShow([]string{arg}); err == nil {
				t.Errorf("expected error for show %s", arg)
			}
		}
	})

	t.Run("renders issues and diff", func(t *testing.T) {
		s, buf := newTestSession(t)
		if err := s.cmdShow([]string{"2"}); err != nil {
			t.Fatalf("cmdShow failed: %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "[2/2] internal/worker/pool.go") {
			t.Errorf("missing header, got %q", out)
		}
		if !strings.Contains(out, "large-file: 950 lines") {
			t.Errorf("missing file-level issue, got %q", out)
		}
		if !strings.Contains(out, "todo-marker at line 4: TODO: split this up") {
			t.Errorf("missing line issue, got %q", out)
		}
		if !strings.Contains(out, "+ c") {
			t.Errorf("missing diff insertion, got %q", out)
		}
		if s.current != 1 {
			t.Errorf("expected current to move to shown item, got %d", s.current)
		}
	})
}

func TestAdvance(t *testing.T) {
	s, buf := newTestSession(t)

	if err := s.cmdNext(nil); err != nil {
		t.Fatalf("cmdNext failed: %v", err)
	}
	if s.states[0] != stateReviewed {
		t.Errorf("expected first item reviewed, got %v", s.states[0])
	}
	if s.current != 1 {
		t.Errorf("expected current 1, got %d", s.current)
	}

	if err := s.cmdSkip(nil); err != nil {
		t.Fatalf("cmdSkip failed: %v", err)
	}
	if s.states[1] != stateSkipped {
		t.Errorf("expected second item skipped, got %v", s.states[1])
	}

	// No pending items remain; state must not be overwritten.
	buf.Reset()
	if err := s.cmdNext(nil); err != nil {
		t.Fatalf("cmdNext failed: %v", err)
	}
	if s.states[1] != stateSkipped {
		t.Errorf("expected skipped state preserved, got %v", s.states[1])
	}
	if !strings.Contains(buf.String(), "Every file has been visited") {
		t.Errorf("expected all-visited notice, got %q", buf.String())
	}
}

func TestCmdPrompt(t *testing.T) {
	s, buf := newTestSession(t)

	if err := s.cmdPrompt(nil); err != nil {
		t.Fatalf("cmdPrompt failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "## Initial Analysis Prompt") {
		t.Errorf("missing prompt title, got %q", out)
	}
	if !strings.Contains(out, "cmd/serve.go (go):") {
		t.Errorf("prompt should reference the current file, got %q", out)
	}
	if strings.Contains(out, "internal/worker/pool.go") {
		t.Errorf("prompt should be scoped to the current file, got %q", out)
	}
}

func TestCmdDone(t *testing.T) {
	s, buf := newTestSession(t)
	s.states[0] = stateReviewed

	err := s.cmdDone(nil)
	if err != io.EOF {
		t.Fatalf("expected io.EOF exit signal, got %v", err)
	}
	if !strings.Contains(buf.String(), "1 reviewed, 0 skipped, 1 pending") {
		t.Errorf("unexpected summary, got %q", buf.String())
	}
}
