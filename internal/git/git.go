package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Git implements Operations using the git CLI.
type Git struct {
	// gitPath is the path to the git executable
	gitPath string
}

var _ Operations = (*Git)(nil)

// NewGit creates a new Git instance.
// It verifies that git is available on the system.
func NewGit(ctx context.Context) (*Git, error) {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return nil, fmt.Errorf("git not found in PATH: %w", err)
	}

	// Verify git works
	cmd := exec.CommandContext(ctx, gitPath, "version")
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git command failed: %w", err)
	}

	return &Git{gitPath: gitPath}, nil
}

// IsRepo reports whether path is inside a git repository.
func (g *Git) IsRepo(ctx context.Context, path string) bool {
	cmd := exec.CommandContext(ctx, g.gitPath, "-C", path, "rev-parse", "--git-dir")
	return cmd.Run() == nil
}

// RepoRoot returns the absolute path of the working tree root.
func (g *Git) RepoRoot(ctx context.Context, path string) (string, error) {
	cmd := exec.CommandContext(ctx, g.gitPath, "-C", path, "rev-parse", "--show-toplevel")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("not inside a git repository: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// HooksDir returns the absolute path of the repository's hooks directory.
// It honors core.hooksPath and separate git dirs (worktrees, submodules).
func (g *Git) HooksDir(ctx context.Context, repoPath string) (string, error) {
	cmd := exec.CommandContext(ctx, g.gitPath, "-C", repoPath, "rev-parse", "--git-path", "hooks")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to locate hooks directory in %s: %w", repoPath, err)
	}

	dir := strings.TrimSpace(string(output))
	// rev-parse emits the path relative to the working directory unless
	// it is already absolute
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(repoPath, dir)
	}
	return dir, nil
}

// CurrentBranch returns the checked-out branch name, or "HEAD" when
// detached.
func (g *Git) CurrentBranch(ctx context.Context, repoPath string) (string, error) {
	cmd := exec.CommandContext(ctx, g.gitPath, "-C", repoPath, "rev-parse", "--abbrev-ref", "HEAD")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to resolve current branch in %s: %w", repoPath, err)
	}
	return strings.TrimSpace(string(output)), nil
}

// StagedChanges returns the files and line totals of the pending commit.
// Line totals come from numstat; binary files report no counts and
// contribute zero.
// SECURITY: repoPath must be a validated, trusted path. This function
// does not perform path validation or sandboxing.
func (g *Git) StagedChanges(ctx context.Context, repoPath string) (*Changes, error) {
	files, err := g.stagedFiles(ctx, repoPath)
	if err != nil {
		return nil, err
	}

	insertions, deletions, err := g.stagedStats(ctx, repoPath)
	if err != nil {
		return nil, err
	}

	return &Changes{
		Files:      files,
		Insertions: insertions,
		Deletions:  deletions,
	}, nil
}

// stagedFiles parses `git diff --cached --name-status -z`.
// NUL separation keeps paths with spaces or unusual characters intact.
func (g *Git) stagedFiles(ctx context.Context, repoPath string) ([]StagedFile, error) {
	cmd := exec.CommandContext(ctx, g.gitPath, "-C", repoPath, "diff", "--cached", "--name-status", "-z")
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git diff --cached failed in %s: %w", repoPath, err)
	}

	fields := strings.Split(string(output), "\x00")
	files := []StagedFile{}

	i := 0
	for i < len(fields) {
		status := fields[i]
		if status == "" {
			i++
			continue
		}

		// Renames and copies carry a score (e.g. R100) and two paths;
		// everything else is a single status letter and one path.
		switch status[0] {
		case 'R', 'C':
			if i+2 >= len(fields) {
				return nil, fmt.Errorf("unexpected name-status entry %q in %s", status, repoPath)
			}
			files = append(files, StagedFile{Path: fields[i+2], Status: status[0]})
			i += 3
		default:
			if i+1 >= len(fields) {
				return nil, fmt.Errorf("unexpected name-status entry %q in %s", status, repoPath)
			}
			files = append(files, StagedFile{Path: fields[i+1], Status: status[0]})
			i += 2
		}
	}

	return files, nil
}

// stagedStats parses `git diff --cached --numstat` and sums line counts.
func (g *Git) stagedStats(ctx context.Context, repoPath string) (int, int, error) {
	cmd := exec.CommandContext(ctx, g.gitPath, "-C", repoPath, "diff", "--cached", "--numstat")
	output, err := cmd.Output()
	if err != nil {
		return 0, 0, fmt.Errorf("git diff --numstat failed in %s: %w", repoPath, err)
	}

	insertions := 0
	deletions := 0

	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		fields := strings.SplitN(scanner.Text(), "\t", 3)
		if len(fields) < 3 {
			continue
		}

		// Binary files report "-" for both counts
		if n, err := strconv.Atoi(fields[0]); err == nil {
			insertions += n
		}
		if n, err := strconv.Atoi(fields[1]); err == nil {
			deletions += n
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, 0, fmt.Errorf("failed to parse git numstat output: %w", err)
	}

	return insertions, deletions, nil
}

// StagedDiff returns the unified diff of one staged file.
// SECURITY: repoPath must be a validated, trusted path. This function
// does not perform path validation or sandboxing.
func (g *Git) StagedDiff(ctx context.Context, repoPath, path string) (string, error) {
	cmd := exec.CommandContext(ctx, g.gitPath, "-C", repoPath, "diff", "--cached", "--", path)
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git diff --cached failed for %s: %w", path, err)
	}
	return string(output), nil
}

// IndexContent returns the staged content of one file.
func (g *Git) IndexContent(ctx context.Context, repoPath, path string) (string, error) {
	return g.showObject(ctx, repoPath, ":"+path)
}

// HeadContent returns the committed content of one file at HEAD.
// Files new in this commit have no HEAD version; callers should treat
// the error as an empty base.
func (g *Git) HeadContent(ctx context.Context, repoPath, path string) (string, error) {
	return g.showObject(ctx, repoPath, "HEAD:"+path)
}

func (g *Git) showObject(ctx context.Context, repoPath, spec string) (string, error) {
	cmd := exec.CommandContext(ctx, g.gitPath, "-C", repoPath, "show", spec)
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git show %s failed in %s: %w", spec, repoPath, err)
	}
	return string(output), nil
}
