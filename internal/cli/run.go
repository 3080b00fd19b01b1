package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/sdkci/protobot/internal/config"
	"github.com/sdkci/protobot/internal/githubapi"
	"github.com/sdkci/protobot/internal/logging"
	"github.com/sdkci/protobot/internal/notify"
)

func run(ctx context.Context, kind notify.Kind, dryRun bool) error {
	// Load .env for local runs; a missing file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	if cfg.Repository == "" || cfg.PRNumber <= 0 {
		logger.Info("no pull request event, nothing to do", "kind", string(kind))
		return nil
	}
	owner, name, err := cfg.SplitRepository()
	if err != nil {
		logger.Warn("invalid repository slug, skipping", "value", cfg.Repository, "err", err)
		return nil
	}

	token, err := resolveToken(ctx, cfg, owner, name)
	if err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}
	client := githubapi.NewWithToken(token, owner, name)

	return notify.New(client, logger, kind).Run(ctx, reviewContext(cfg, owner, name, dryRun))
}

// resolveToken prefers a plain token, then App credentials. Neither being
// set yields an unauthenticated client, still usable for dry runs against
// public repositories.
func resolveToken(ctx context.Context, cfg *config.Config, owner, name string) (string, error) {
	if cfg.GitHubToken != "" {
		return cfg.GitHubToken, nil
	}
	if cfg.HasAppCredentials() {
		auth := &githubapi.AppAuth{AppID: cfg.GitHubAppID, PrivateKey: cfg.GitHubPrivateKey}
		return auth.InstallationToken(ctx, owner, name)
	}
	return "", nil
}

// reviewContext builds the immutable invocation record from configuration.
func reviewContext(cfg *config.Config, owner, name string, dryRun bool) notify.ReviewContext {
	scope := notify.ScopeMode(cfg.ScopeMode)
	if scope != notify.ScopePartial {
		scope = notify.ScopeFull
	}
	validation := notify.ValidationOutcome(cfg.ValidationOutcome)
	if validation != notify.ValidationPassed {
		validation = notify.ValidationSkipped
	}

	return notify.ReviewContext{
		Owner:            owner,
		Repo:             name,
		Number:           cfg.PRNumber,
		BaseSHA:          cfg.BaseSHA,
		HeadSHA:          cfg.HeadSHA,
		Author:           cfg.PRAuthor,
		AuthorType:       cfg.PRAuthorType,
		ChangedFilesPath: cfg.ChangedFilesFile,
		DiffPath:         cfg.DiffFile,
		ScopeMode:        scope,
		ScopeReason:      cfg.ScopeReason,
		Validation:       validation,
		Checks:           notify.SplitChecks(cfg.ValidationChecks),
		DryRun:           cfg.DryRun || dryRun,
	}
}
