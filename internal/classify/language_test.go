package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLanguageFor_KnownExtensions(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"script.py", "python"},
		{"app.js", "javascript"},
		{"component.tsx", "javascript"},
		{"main.go", "go"},
		{"lib.rs", "rust"},
		{"Main.java", "java"},
		{"model.rb", "ruby"},
		{"index.php", "php"},
		{"deep/nested/path/util.PY", "python"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, languageFor(tt.path, nil))
		})
	}
}

func TestLanguageFor_EnryFallback(t *testing.T) {
	// No extension entry; enry resolves by filename.
	assert.Equal(t, "dockerfile", languageFor("Dockerfile", nil))
}

func TestLanguageFor_Unknown(t *testing.T) {
	assert.Equal(t, "", languageFor("data.xyzzy", nil))
}
