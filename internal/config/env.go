package config

import (
	"fmt"
	"os"
	"strconv"
)

// skipEnv is the hook bypass variable. The name predates this toolkit
// and is kept so existing workflows carry over.
const skipEnv = "SKIP_CLEANUP"

// ApplyEnv overlays SWEEP_-prefixed environment variables onto the
// config. Unset variables leave the file values untouched.
//
// Environment variables:
//   - SWEEP_MAX_FILES: minimal-change file budget
//   - SWEEP_MAX_LINES: minimal-change changed-line budget
//   - SWEEP_LARGE_FILE_LINES: large-file threshold, 0 to disable
//   - SWEEP_STRICT: exit non-zero from `sweep check` when issues exist
//   - SWEEP_WORKERS: concurrent scan bound
//   - SWEEP_AI_MODEL: model for AI suggestions
//   - SWEEP_AI_MAX_TOKENS: response budget for AI suggestions
//
// Returns an error if any variable has an invalid value.
func (c *Config) ApplyEnv() error {
	if err := parseEnvInt("SWEEP_MAX_FILES", &c.Thresholds.MaxFiles); err != nil {
		return err
	}
	if err := parseEnvInt("SWEEP_MAX_LINES", &c.Thresholds.MaxLines); err != nil {
		return err
	}
	if err := parseEnvInt("SWEEP_LARGE_FILE_LINES", &c.Thresholds.LargeFileLines); err != nil {
		return err
	}
	if err := parseEnvBool("SWEEP_STRICT", &c.Strict); err != nil {
		return err
	}
	if err := parseEnvInt("SWEEP_WORKERS", &c.Workers); err != nil {
		return err
	}
	if err := parseEnvString("SWEEP_AI_MODEL", &c.AI.Model); err != nil {
		return err
	}
	if err := parseEnvInt("SWEEP_AI_MAX_TOKENS", &c.AI.MaxTokens); err != nil {
		return err
	}
	return nil
}

// SkipRequested reports whether the bypass variable asks `sweep check`
// to pass without classifying. It mirrors the shell test in the
// generated hook: any non-empty value other than "0" or "false"
// requests the skip.
func SkipRequested() bool {
	value := os.Getenv(skipEnv)
	return value != "" && value != "0" && value != "false"
}

// parseEnvInt parses an int from an environment variable
func parseEnvInt(key string, dest *int) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}

// parseEnvBool parses a bool from an environment variable
func parseEnvBool(key string, dest *bool) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}

// parseEnvString parses a string from an environment variable
func parseEnvString(key string, dest *string) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	*dest = value
	return nil
}
