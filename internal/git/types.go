package git

import (
	"context"
)

// Operations provides the git plumbing used by the check pipeline.
// This interface is designed to be implementation-agnostic,
// allowing for testing with mock implementations.
type Operations interface {
	// IsRepo reports whether path is inside a git repository.
	IsRepo(ctx context.Context, path string) bool

	// RepoRoot returns the absolute path of the working tree root.
	RepoRoot(ctx context.Context, path string) (string, error)

	// HooksDir returns the absolute path of the repository's hooks directory.
	HooksDir(ctx context.Context, repoPath string) (string, error)

	// CurrentBranch returns the checked-out branch name.
	CurrentBranch(ctx context.Context, repoPath string) (string, error)

	// StagedChanges returns the files and line totals of the pending commit.
	StagedChanges(ctx context.Context, repoPath string) (*Changes, error)

	// StagedDiff returns the unified diff of one staged file.
	StagedDiff(ctx context.Context, repoPath, path string) (string, error)

	// IndexContent returns the staged content of one file.
	IndexContent(ctx context.Context, repoPath, path string) (string, error)

	// HeadContent returns the HEAD content of one file. Files absent
	// from HEAD (new files) return an error.
	HeadContent(ctx context.Context, repoPath, path string) (string, error)
}

// StagedFile is one entry of the index diff for the pending commit.
type StagedFile struct {
	// Path is the repo-relative, slash-separated file path.
	// For renames and copies this is the destination path.
	Path string

	// Status is the git status letter: A, M, D, R, C, or T.
	Status byte
}

// Deleted reports whether the entry removes the file from the tree.
func (f StagedFile) Deleted() bool {
	return f.Status == 'D'
}

// Changes aggregates the staged state of the pending commit.
type Changes struct {
	// Files lists staged entries in git's output order
	Files []StagedFile

	// Insertions is the total added-line count across all staged files
	Insertions int

	// Deletions is the total removed-line count across all staged files
	Deletions int
}

// Paths returns the staged file paths in order.
func (c *Changes) Paths() []string {
	paths := make([]string, len(c.Files))
	for i, f := range c.Files {
		paths[i] = f.Path
	}
	return paths
}

// Empty reports whether nothing is staged.
func (c *Changes) Empty() bool {
	return len(c.Files) == 0
}
