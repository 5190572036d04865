// Package scan walks a working tree and builds a synthetic change set
// so the classifier can audit a whole project outside a commit.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/codesweep/sweep/internal/classify"
)

// Walk lists the files under root, honoring a root .gitignore when one
// exists and pruning configured generated directories early. The
// returned ChangeSet is synthetic: the file list is real, insertions
// and deletions stay zero because nothing is staged.
//
// Hidden entries (dot-prefixed names) are skipped, which keeps .git,
// .sweep, and editor state out of the audit.
func Walk(root string, cfg classify.Config) (classify.ChangeSet, error) {
	root = filepath.Clean(root)

	info, err := os.Stat(root)
	if err != nil {
		return classify.ChangeSet{}, fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return classify.ChangeSet{}, fmt.Errorf("%s is not a directory", root)
	}

	matcher := loadGitignore(root)
	generated := generatedDirs(cfg.GeneratedDirs)

	var files []string
	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, never fatal.
			return nil
		}
		if path == root {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		name := entry.Name()

		if strings.HasPrefix(name, ".") {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.IsDir() {
			if generated[name] {
				return filepath.SkipDir
			}
			if matcher != nil && matcher.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if !entry.Type().IsRegular() {
			return nil
		}
		if matcher != nil && matcher.MatchesPath(rel) {
			return nil
		}

		files = append(files, rel)
		return nil
	})
	if walkErr != nil {
		return classify.ChangeSet{}, fmt.Errorf("failed to walk %s: %w", root, walkErr)
	}

	return classify.ChangeSet{Files: files}, nil
}

// loadGitignore compiles the root .gitignore when present. A missing or
// unreadable file means no ignore rules, not an error.
func loadGitignore(root string) *ignore.GitIgnore {
	matcher, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return matcher
}

// generatedDirs turns the configured directory entries into a name set
// for pruning. Entries arrive with or without a trailing slash.
func generatedDirs(dirs []string) map[string]bool {
	set := make(map[string]bool, len(dirs))
	for _, dir := range dirs {
		dir = strings.Trim(strings.TrimSpace(dir), "/")
		if dir != "" {
			set[dir] = true
		}
	}
	return set
}
