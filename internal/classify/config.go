package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Config controls classification. It is passed explicitly to New;
// the classifier keeps no ambient state, so synthetic configurations
// are cheap to construct in tests.
//
// Pattern fields hold regular expression sources (compiled by New) or
// doublestar globs. A malformed entry fails New before any scanning.
type Config struct {
	// MaxFiles and MaxLines bound the minimal-change classification:
	// a change set with at most MaxFiles non-generated files and at
	// most MaxLines changed lines is SizeMinimal.
	MaxFiles int
	MaxLines int

	// LargeFileLines is the line count above which a scanned file
	// receives a LargeFile issue. Zero disables the check.
	LargeFileLines int

	// GeneratedDirs are directory names whose contents are build
	// output. Matched as a path prefix or as an interior segment.
	GeneratedDirs []string

	// GeneratedGlobs match minified or machine-written files.
	// Patterns without a slash match the basename; patterns with a
	// slash match the repo-relative path.
	GeneratedGlobs []string

	// SiblingSources maps a compiled-artifact extension to the source
	// extensions whose presence marks it generated (".js" -> ".ts").
	SiblingSources map[string][]string

	// DebugPatterns maps a language key to debug-statement regexes.
	DebugPatterns map[string][]string

	// TodoMarkers are case-sensitive substrings flagged as work
	// markers.
	TodoMarkers []string

	// DeclarationPatterns maps a language key to declaration regexes.
	// Each pattern must capture the declared identifier in its first
	// group.
	DeclarationPatterns map[string][]string

	// Workers bounds parallel file scanning. Zero picks a default
	// based on available CPUs.
	Workers int
}

// DefaultConfig returns the stock rule set. The thresholds are the
// documented defaults (2 files / 10 lines for the minimal path, 200
// lines for the large-file check); callers override them through
// configuration.
func DefaultConfig() Config {
	return Config{
		MaxFiles:       2,
		MaxLines:       10,
		LargeFileLines: 200,
		GeneratedDirs: []string{
			"dist/",
			"build/",
			"node_modules/",
			"vendor/",
			"__pycache__/",
			".git/",
		},
		GeneratedGlobs: []string{
			"*.min.js",
			"*.min.css",
			"*.bundle.js",
			"*.map",
			"package-lock.json",
			"yarn.lock",
			"pnpm-lock.yaml",
			"go.sum",
			"Cargo.lock",
			"Gemfile.lock",
			"poetry.lock",
			"manifest.json",
		},
		SiblingSources: map[string][]string{
			".js":  {".ts", ".tsx"},
			".jsx": {".tsx"},
		},
		DebugPatterns: map[string][]string{
			"python": {
				`\bprint\(`,
				`\bbreakpoint\(\)`,
				`\bpdb\.set_trace\(`,
				`^\s*import\s+i?pdb\b`,
				`\bipdb\.set_trace\(`,
			},
			"javascript": {
				`\bconsole\.(log|debug|info|warn|error)\(`,
				`\bdebugger\b`,
				`\balert\(`,
			},
			"go": {
				`\bfmt\.Print(ln|f)?\(`,
				`\blog\.Print(ln|f)?\(`,
				`\bprintln\(`,
			},
			"rust": {
				`\bprintln!\(`,
				`\bdbg!\(`,
			},
			"java": {
				`\bSystem\.out\.print`,
			},
			"ruby": {
				`^\s*puts\s`,
				`\bbinding\.pry\b`,
			},
			"php": {
				`\bvar_dump\(`,
				`\bprint_r\(`,
			},
		},
		TodoMarkers: []string{"TODO", "FIXME", "XXX", "HACK"},
		DeclarationPatterns: map[string][]string{
			"python": {
				`^\s*def\s+([A-Za-z_][A-Za-z0-9_]*)`,
				`^\s*class\s+([A-Za-z_][A-Za-z0-9_]*)`,
			},
			"javascript": {
				`^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s*([$A-Za-z_][$A-Za-z0-9_]*)`,
				`^\s*(?:export\s+)?(?:abstract\s+)?class\s+([$A-Za-z_][$A-Za-z0-9_]*)`,
			},
			"go": {
				`^func\s+(?:\([^)]+\)\s+)?([A-Za-z_][A-Za-z0-9_]*)\s*[(\[]`,
			},
			"rust": {
				`^\s*(?:pub(?:\([^)]*\))?\s+)?fn\s+([A-Za-z_][A-Za-z0-9_]*)`,
			},
			"java": {
				`^\s*(?:(?:public|private|protected|static|final|abstract)\s+)*class\s+([A-Za-z_$][A-Za-z0-9_$]*)`,
			},
			"ruby": {
				`^\s*def\s+(?:self\.)?([A-Za-z_][A-Za-z0-9_]*[?!]?)`,
				`^\s*class\s+([A-Z][A-Za-z0-9_]*)`,
			},
			"php": {
				`^\s*(?:(?:public|private|protected|static|abstract|final)\s+)*function\s+([A-Za-z_][A-Za-z0-9_]*)`,
			},
		},
	}
}

// ruleSet holds the compiled form of a Config.
type ruleSet struct {
	dirs     []string
	globs    []string
	siblings map[string][]string
	debug    map[string][]*regexp.Regexp
	todos    []string
	decls    map[string][]*regexp.Regexp
}

// compile validates every pattern up front so a malformed configuration
// surfaces before the first file is opened. Running with silently empty
// rules would report a misleading clean result.
func (c Config) compile() (*ruleSet, error) {
	if c.MaxFiles < 0 {
		return nil, fmt.Errorf("max files must be non-negative, got %d", c.MaxFiles)
	}
	if c.MaxLines < 0 {
		return nil, fmt.Errorf("max lines must be non-negative, got %d", c.MaxLines)
	}
	if c.LargeFileLines < 0 {
		return nil, fmt.Errorf("large file threshold must be non-negative, got %d", c.LargeFileLines)
	}

	rules := &ruleSet{
		siblings: make(map[string][]string, len(c.SiblingSources)),
		debug:    make(map[string][]*regexp.Regexp, len(c.DebugPatterns)),
		decls:    make(map[string][]*regexp.Regexp, len(c.DeclarationPatterns)),
	}

	for _, dir := range c.GeneratedDirs {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			return nil, fmt.Errorf("generated directory entries must not be empty")
		}
		if !strings.HasSuffix(dir, "/") {
			dir += "/"
		}
		rules.dirs = append(rules.dirs, dir)
	}

	for _, glob := range c.GeneratedGlobs {
		if glob == "" {
			return nil, fmt.Errorf("generated glob entries must not be empty")
		}
		if !doublestar.ValidatePattern(glob) {
			return nil, fmt.Errorf("invalid generated glob %q", glob)
		}
		rules.globs = append(rules.globs, glob)
	}

	for ext, sources := range c.SiblingSources {
		if !strings.HasPrefix(ext, ".") {
			return nil, fmt.Errorf("sibling source key %q must be an extension", ext)
		}
		rules.siblings[ext] = sources
	}

	for lang, patterns := range c.DebugPatterns {
		for _, pattern := range patterns {
			rx, err := regexp.Compile(pattern)
			if err != nil {
				return nil, fmt.Errorf("debug pattern %q for %s: %w", pattern, lang, err)
			}
			rules.debug[lang] = append(rules.debug[lang], rx)
		}
	}

	for _, marker := range c.TodoMarkers {
		if marker == "" {
			return nil, fmt.Errorf("todo markers must not be empty")
		}
		rules.todos = append(rules.todos, marker)
	}

	for lang, patterns := range c.DeclarationPatterns {
		for _, pattern := range patterns {
			rx, err := regexp.Compile(pattern)
			if err != nil {
				return nil, fmt.Errorf("declaration pattern %q for %s: %w", pattern, lang, err)
			}
			if rx.NumSubexp() < 1 {
				return nil, fmt.Errorf("declaration pattern %q for %s must capture the identifier", pattern, lang)
			}
			rules.decls[lang] = append(rules.decls[lang], rx)
		}
	}

	return rules, nil
}
