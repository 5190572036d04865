package classify

import (
	"github.com/samber/lo"
)

// SizeClass buckets a change set by how much review it warrants.
type SizeClass string

const (
	// SizeMinimal marks a change small enough for the express path:
	// at most MaxFiles non-generated files and MaxLines changed lines.
	SizeMinimal SizeClass = "minimal"

	// SizeStandard is everything else.
	SizeStandard SizeClass = "standard"
)

// IssueKind identifies the category of a detected issue.
type IssueKind string

const (
	IssueDebugStatement IssueKind = "debug-statement"
	IssueTodoMarker     IssueKind = "todo-marker"
	IssueLargeFile      IssueKind = "large-file"
	IssueDuplicateName  IssueKind = "duplicate-function-name"
)

// ChangeSet describes the staged changes of a pending commit.
// Insertions and Deletions come from diff statistics, not from file
// contents, so deleted and generated files are represented faithfully.
type ChangeSet struct {
	Files      []string `json:"files"`
	Insertions int      `json:"insertions"`
	Deletions  int      `json:"deletions"`
}

// TotalLines is the aggregate number of changed lines.
func (cs ChangeSet) TotalLines() int {
	return cs.Insertions + cs.Deletions
}

// Issue is a single detected concern attached to a file. Line is
// 1-based for line-level matches and 0 for file-level issues.
type Issue struct {
	Kind   IssueKind `json:"kind"`
	Line   int       `json:"line,omitempty"`
	Detail string    `json:"detail,omitempty"`
}

// FileRecord is the per-file classification outcome.
//
// IsGenerated implies an empty Issues list: generated files are never
// content-scanned.
type FileRecord struct {
	Path        string  `json:"path"`
	IsGenerated bool    `json:"is_generated"`
	Language    string  `json:"language,omitempty"`
	LineCount   int     `json:"line_count"`
	Issues      []Issue `json:"issues,omitempty"`
}

// Flagged reports whether this record carries scannable issues.
func (r FileRecord) Flagged() bool {
	return !r.IsGenerated && len(r.Issues) > 0
}

// SkippedFile records a file that was excluded from content scanning
// because of a per-file error. Callers surface these so skipped work is
// never silently dropped.
type SkippedFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Result is the full classification of one change set.
type Result struct {
	SizeClass    SizeClass     `json:"size_class"`
	HasIssues    bool          `json:"has_issues"`
	FileRecords  []FileRecord  `json:"file_records"`
	SkippedFiles []SkippedFile `json:"skipped_files,omitempty"`
}

// Flagged returns the non-generated records that carry issues, in
// input order.
func (r *Result) Flagged() []FileRecord {
	return lo.Filter(r.FileRecords, func(rec FileRecord, _ int) bool {
		return rec.Flagged()
	})
}

// IssueCounts tallies detected issues by kind across all records.
func (r *Result) IssueCounts() map[IssueKind]int {
	counts := make(map[IssueKind]int)
	for _, rec := range r.FileRecords {
		for _, issue := range rec.Issues {
			counts[issue.Kind]++
		}
	}
	return counts
}

// TotalIssues is the number of issues across all records.
func (r *Result) TotalIssues() int {
	return lo.SumBy(r.FileRecords, func(rec FileRecord) int {
		return len(rec.Issues)
	})
}
