// Package config loads the per-invocation inputs protobot receives from its
// CI environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds everything a single protobot invocation reads from the
// environment. It is populated once at startup and never mutated.
type Config struct {
	// Triggering event
	Repository string `env:"GITHUB_REPOSITORY"` // owner/name slug
	PRNumber   int    `env:"PR_NUMBER"`
	BaseSHA    string `env:"BASE_SHA"`
	HeadSHA    string `env:"HEAD_SHA"`

	// PR author, when the event already carries it. Left empty, the
	// notifier fetches the PR once instead.
	PRAuthor     string `env:"PR_AUTHOR"`
	PRAuthorType string `env:"PR_AUTHOR_TYPE"`

	// Input artifacts produced by earlier CI steps
	DiffFile         string `env:"DIFF_FILE"`
	ChangedFilesFile string `env:"CHANGED_FILES_FILE"`

	// Analysis metadata forwarded into the comment body
	ScopeMode         string `env:"SCOPE_MODE" envDefault:"full"`
	ScopeReason       string `env:"SCOPE_REASON"`
	ValidationOutcome string `env:"VALIDATION_OUTCOME" envDefault:"skipped"`
	ValidationChecks  string `env:"VALIDATION_CHECKS"` // comma- or newline-delimited

	// Execution toggles
	DryRun   bool   `env:"DRY_RUN"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Authentication: a plain token wins; otherwise App credentials are
	// exchanged for an installation token.
	GitHubToken      string `env:"GITHUB_TOKEN"`
	GitHubAppID      string `env:"GITHUB_APP_ID"`
	GitHubPrivateKey string `env:"GITHUB_PRIVATE_KEY"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.GitHubPrivateKey = normalizePrivateKey(cfg.GitHubPrivateKey)
	return cfg, nil
}

// SplitRepository splits the owner/name slug from GITHUB_REPOSITORY.
func (c *Config) SplitRepository() (owner, name string, err error) {
	parts := strings.Split(c.Repository, "/")
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return "", "", fmt.Errorf("invalid repository slug %q, expected owner/name", c.Repository)
	}
	return parts[0], parts[1], nil
}

// HasAppCredentials reports whether GitHub App authentication is configured.
func (c *Config) HasAppCredentials() bool {
	return c.GitHubAppID != "" && c.GitHubPrivateKey != ""
}

// normalizePrivateKey undoes the mangling PEM keys suffer in CI secrets:
// surrounding quotes, Windows line endings, and literal \n escapes.
func normalizePrivateKey(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "\"") && strings.HasSuffix(trimmed, "\"") {
		trimmed = strings.TrimPrefix(trimmed, "\"")
		trimmed = strings.TrimSuffix(trimmed, "\"")
	}
	if strings.HasPrefix(trimmed, "'") && strings.HasSuffix(trimmed, "'") {
		trimmed = strings.TrimPrefix(trimmed, "'")
		trimmed = strings.TrimSuffix(trimmed, "'")
	}

	trimmed = strings.ReplaceAll(trimmed, "\r\n", "\n")
	trimmed = strings.ReplaceAll(trimmed, "\r", "\n")
	if strings.Contains(trimmed, "\\n") {
		trimmed = strings.ReplaceAll(trimmed, "\\r", "")
		trimmed = strings.ReplaceAll(trimmed, "\\n", "\n")
	}

	return trimmed
}
