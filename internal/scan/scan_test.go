package scan

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/codesweep/sweep/internal/classify"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func TestWalk(t *testing.T) {
	root := t.TempDir()

	writeFile(t, root, "a.go", "package main\n")
	writeFile(t, root, "b.py", "x = 1\n")
	writeFile(t, root, "sub/c.js", "let c = 1\n")
	writeFile(t, root, "dist/bundle.js", "var x=1\n")
	writeFile(t, root, "node_modules/pkg/index.js", "module.exports = {}\n")
	writeFile(t, root, ".hidden/d.go", "package hidden\n")
	writeFile(t, root, ".env", "SECRET=1\n")
	writeFile(t, root, "ignored.txt", "scratch\n")
	writeFile(t, root, "logs/app.log", "line\n")
	writeFile(t, root, ".gitignore", "ignored.txt\nlogs/\n")

	cs, err := Walk(root, classify.DefaultConfig())
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	want := []string{"a.go", "b.py", "sub/c.js"}
	if !reflect.DeepEqual(cs.Files, want) {
		t.Errorf("Files = %v, want %v", cs.Files, want)
	}
	if cs.Insertions != 0 || cs.Deletions != 0 {
		t.Errorf("expected zero churn, got +%d/-%d", cs.Insertions, cs.Deletions)
	}
}

func TestWalkWithoutGitignore(t *testing.T) {
	root := t.TempDir()

	writeFile(t, root, "main.go", "package main\n")
	writeFile(t, root, "notes.txt", "notes\n")
	writeFile(t, root, "vendor/dep/dep.go", "package dep\n")

	cs, err := Walk(root, classify.DefaultConfig())
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	want := []string{"main.go", "notes.txt"}
	if !reflect.DeepEqual(cs.Files, want) {
		t.Errorf("Files = %v, want %v", cs.Files, want)
	}
}

func TestWalkBadRoot(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		if _, err := Walk(filepath.Join(t.TempDir(), "nope"), classify.DefaultConfig()); err == nil {
			t.Fatal("expected error for missing root")
		}
	})

	t.Run("root is a file", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "plain.txt", "x\n")
		if _, err := Walk(filepath.Join(root, "plain.txt"), classify.DefaultConfig()); err == nil {
			t.Fatal("expected error for non-directory root")
		}
	})
}

func TestGeneratedDirs(t *testing.T) {
	set := generatedDirs([]string{"dist/", " build ", "node_modules", ""})

	for _, name := range []string{"dist", "build", "node_modules"} {
		if !set[name] {
			t.Errorf("expected %q in set", name)
		}
	}
	if set[""] {
		t.Error("empty entries must be dropped")
	}
}
