package classify

import (
	pathpkg "path"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// extLanguages maps common extensions straight to the language keys
// used by DebugPatterns and DeclarationPatterns. Extensions not listed
// here fall through to enry's detector.
var extLanguages = map[string]string{
	".py":   "python",
	".pyw":  "python",
	".js":   "javascript",
	".jsx":  "javascript",
	".ts":   "javascript",
	".tsx":  "javascript",
	".mjs":  "javascript",
	".cjs":  "javascript",
	".go":   "go",
	".rs":   "rust",
	".java": "java",
	".rb":   "ruby",
	".php":  "php",
	".c":    "c",
	".h":    "c",
	".cc":   "cpp",
	".cpp":  "cpp",
	".hpp":  "cpp",
	".cs":   "csharp",
}

// languageFor resolves the language key for a repo-relative path.
// sample is the first chunk of file content, used only when the
// extension is unknown. Returns "" when nothing matches; pattern
// lookups on "" simply find no entries.
func languageFor(rel string, sample []byte) string {
	ext := strings.ToLower(pathpkg.Ext(rel))
	if lang, ok := extLanguages[ext]; ok {
		return lang
	}
	name := enry.GetLanguage(pathpkg.Base(rel), sample)
	if name == "" {
		return ""
	}
	return normalizeLanguage(name)
}

// normalizeLanguage folds enry's display names onto the keys the
// pattern tables use.
func normalizeLanguage(name string) string {
	switch name {
	case "JavaScript", "TypeScript", "JSX", "TSX":
		return "javascript"
	case "C++":
		return "cpp"
	case "C#":
		return "csharp"
	default:
		return strings.ToLower(name)
	}
}
