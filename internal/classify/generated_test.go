package classify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsGenerated_Rules(t *testing.T) {
	c := newTestClassifier(t, DefaultConfig())
	root := writeTree(t, nil)

	tests := []struct {
		path     string
		expected bool
	}{
		{"dist/app.js", true},
		{"packages/web/dist/app.js", true},
		{"build/output.css", true},
		{"node_modules/lodash/index.js", true},
		{"src/app.min.js", true},
		{"assets/vendor.bundle.js", true},
		{"styles/site.min.css", true},
		{"sourcemaps/app.js.map", true},
		{"package-lock.json", true},
		{"backend/go.sum", true},
		{"extension/manifest.json", true},
		{"src/main.js", false},
		{"distribution.js", false},
		{"builder.py", false},
		{"locks.go", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.isGenerated(root, tt.path))
		})
	}
}

func TestIsGenerated_SiblingSource(t *testing.T) {
	c := newTestClassifier(t, DefaultConfig())
	root := writeTree(t, map[string]string{
		"src/app.ts":    "export const x = 1\n",
		"src/app.js":    "var x = 1\n",
		"src/lonely.js": "var y = 2\n",
	})

	assert.True(t, c.isGenerated(root, "src/app.js"))
	assert.False(t, c.isGenerated(root, "src/lonely.js"))
}

// A directory that happens to carry a source extension is not a sibling.
func TestIsGenerated_SiblingMustBeFile(t *testing.T) {
	c := newTestClassifier(t, DefaultConfig())
	root := writeTree(t, map[string]string{
		"src/app.js": "var x = 1\n",
	})
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src", "app.ts"), 0755))

	assert.False(t, c.isGenerated(root, "src/app.js"))
}
