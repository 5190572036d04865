package classify

import (
	"os"
	pathpkg "path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// isGenerated applies the exclusion rules in fixed priority order:
// directory prefix, then glob, then sibling source. First match wins.
func (c *Classifier) isGenerated(root, rel string) bool {
	for _, dir := range c.rules.dirs {
		if strings.HasPrefix(rel, dir) || strings.Contains(rel, "/"+dir) {
			return true
		}
	}

	base := pathpkg.Base(rel)
	for _, glob := range c.rules.globs {
		target := base
		if strings.ContainsRune(glob, '/') {
			target = rel
		}
		// Patterns were validated at compile time, so Match cannot fail.
		if ok, _ := doublestar.Match(glob, target); ok {
			return true
		}
	}

	ext := strings.ToLower(pathpkg.Ext(rel))
	if sources, ok := c.rules.siblings[ext]; ok {
		stem := strings.TrimSuffix(rel, pathpkg.Ext(rel))
		for _, source := range sources {
			sibling := filepath.Join(root, filepath.FromSlash(stem+source))
			if info, err := os.Stat(sibling); err == nil && !info.IsDir() {
				return true
			}
		}
	}

	return false
}
