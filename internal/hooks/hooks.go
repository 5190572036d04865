// Package hooks installs and removes the git pre-commit hook that runs
// `sweep check` before every commit.
//
// The generated hook is marked so install and uninstall never touch a
// hook the toolkit does not own. A pre-existing foreign hook is moved
// aside to pre-commit.backup on install and restored on uninstall.
package hooks

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	// HookName is the git hook the toolkit manages.
	HookName = "pre-commit"

	// hookMarker identifies a hook written by this toolkit.
	hookMarker = "sweep pre-commit hook"

	// backupSuffix is appended to a foreign hook moved aside on install.
	backupSuffix = ".backup"
)

// Manager installs, inspects, and removes the managed hook inside one
// hooks directory.
type Manager struct {
	hooksDir string
}

// NewManager creates a Manager for a repository's hooks directory.
func NewManager(hooksDir string) *Manager {
	return &Manager{hooksDir: hooksDir}
}

// Status describes the current state of the managed hook.
type Status struct {
	// Path is the pre-commit hook location
	Path string

	// Installed is true when the hook exists and carries the marker
	Installed bool

	// Executable is true when the hook has an execute bit set
	Executable bool

	// Foreign is true when a pre-commit hook exists but is not ours
	Foreign bool

	// HasBackup is true when a moved-aside foreign hook is present
	HasBackup bool
}

// InstallResult reports what Install did.
type InstallResult struct {
	// Path is the written hook location
	Path string

	// BackedUp is true when a foreign hook was moved to the backup path
	BackedUp bool

	// Updated is true when an existing managed hook was overwritten
	Updated bool
}

// UninstallResult reports what Uninstall did.
type UninstallResult struct {
	// Removed is true when the managed hook was deleted
	Removed bool

	// Restored is true when a backup replaced the managed hook
	Restored bool
}

// Script renders the pre-commit hook for the given executable name.
// The script honors SKIP_CLEANUP and passes silently when the binary
// is not on PATH, so clones without the toolkit still commit.
func Script(binPath string) string {
	return fmt.Sprintf(`#!/bin/sh
# %s
# Managed file: reinstall with "%s hooks install" instead of editing.

if [ -n "$SKIP_CLEANUP" ] && [ "$SKIP_CLEANUP" != "0" ] && [ "$SKIP_CLEANUP" != "false" ]; then
    echo "Cleanup skipped via SKIP_CLEANUP environment variable"
    exit 0
fi

if ! command -v %s >/dev/null 2>&1; then
    exit 0
fi

exec %s check
`, hookMarker, binPath, binPath, binPath)
}

// Install writes the managed hook, moving any foreign hook aside first.
// Reinstalling over an already-managed hook refreshes it in place.
func (m *Manager) Install() (*InstallResult, error) {
	if err := os.MkdirAll(m.hooksDir, 0755); err != nil {
		return nil, fmt.Errorf("creating hooks directory: %w", err)
	}

	hookPath := m.hookPath()
	result := &InstallResult{Path: hookPath}

	if content, err := os.ReadFile(hookPath); err == nil {
		if strings.Contains(string(content), hookMarker) {
			result.Updated = true
		} else {
			backupPath := hookPath + backupSuffix
			if err := os.Rename(hookPath, backupPath); err != nil {
				return nil, fmt.Errorf("backing up existing pre-commit hook: %w", err)
			}
			result.BackedUp = true
		}
	}

	script := Script(m.binPath())
	if err := os.WriteFile(hookPath, []byte(script), 0755); err != nil {
		return nil, fmt.Errorf("writing pre-commit hook: %w", err)
	}

	return result, nil
}

// Uninstall removes the managed hook, restoring a backed-up foreign
// hook if one exists. Removing a hook the toolkit does not own is an
// error; a missing hook is not.
func (m *Manager) Uninstall() (*UninstallResult, error) {
	hookPath := m.hookPath()
	result := &UninstallResult{}

	content, err := os.ReadFile(hookPath)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return nil, fmt.Errorf("reading pre-commit hook: %w", err)
	}

	if !strings.Contains(string(content), hookMarker) {
		return nil, fmt.Errorf("pre-commit hook at %s is not managed by this toolkit", hookPath)
	}

	backupPath := hookPath + backupSuffix
	if _, err := os.Stat(backupPath); err == nil {
		if err := os.Rename(backupPath, hookPath); err != nil {
			return nil, fmt.Errorf("restoring backed-up pre-commit hook: %w", err)
		}
		result.Restored = true
		return result, nil
	}

	if err := os.Remove(hookPath); err != nil {
		return nil, fmt.Errorf("removing pre-commit hook: %w", err)
	}
	result.Removed = true
	return result, nil
}

// Status inspects the hook without changing anything.
func (m *Manager) Status() (*Status, error) {
	hookPath := m.hookPath()
	status := &Status{Path: hookPath}

	if content, err := os.ReadFile(hookPath); err == nil {
		if strings.Contains(string(content), hookMarker) {
			status.Installed = true
		} else {
			status.Foreign = true
		}
		if info, err := os.Stat(hookPath); err == nil {
			status.Executable = info.Mode()&0111 != 0
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading pre-commit hook: %w", err)
	}

	if _, err := os.Stat(hookPath + backupSuffix); err == nil {
		status.HasBackup = true
	}

	return status, nil
}

// CheckPermissions verifies the hooks directory is writable by
// creating and removing a probe file.
func (m *Manager) CheckPermissions() error {
	probe := filepath.Join(m.hooksDir, ".sweep-permission-test")
	if err := os.WriteFile(probe, []byte("test"), 0644); err != nil {
		return fmt.Errorf("hooks directory is not writable: %w", err)
	}
	defer os.Remove(probe)
	return nil
}

func (m *Manager) hookPath() string {
	return filepath.Join(m.hooksDir, HookName)
}

// binPath resolves the toolkit binary for the generated script,
// falling back to the bare name when it is not yet on PATH.
func (m *Manager) binPath() string {
	if path, err := exec.LookPath("sweep"); err == nil {
		return path
	}
	return "sweep"
}
