// Package notify implements protobot's pull request notifiers: a marker-based
// deduplication guard, the comment body composer, and the per-kind
// orchestration around them.
package notify

import (
	"context"

	"github.com/google/go-github/v66/github"

	"github.com/sdkci/protobot/internal/githubapi"
)

// ScopeMode describes how much of the changed surface was analyzed for the
// triggering event.
type ScopeMode string

const (
	ScopeFull    ScopeMode = "full"
	ScopePartial ScopeMode = "partial"
)

// ValidationOutcome is the result of the schema validation step that ran (or
// did not run) before the notifier.
type ValidationOutcome string

const (
	ValidationPassed  ValidationOutcome = "passed"
	ValidationSkipped ValidationOutcome = "skipped"
)

// ReviewContext is the immutable per-invocation input record. It is built
// once from the environment and never mutated.
type ReviewContext struct {
	Owner   string
	Repo    string
	Number  int
	BaseSHA string
	HeadSHA string

	// Author login/type from the triggering event, when available.
	Author     string
	AuthorType string

	// Paths to artifacts written by earlier CI steps.
	ChangedFilesPath string
	DiffPath         string

	ScopeMode   ScopeMode
	ScopeReason string
	Validation  ValidationOutcome
	Checks      []string

	DryRun bool
}

// API is the slice of the issue-tracker surface the notifiers consume.
// Injecting it keeps the guard and orchestrator testable with fakes.
type API interface {
	// ListIssueComments returns one page of comments plus the next page
	// number, zero when exhausted.
	ListIssueComments(ctx context.Context, number, page, perPage int) ([]*github.IssueComment, int, error)

	// CreateIssueComment posts a new comment on the issue or PR.
	CreateIssueComment(ctx context.Context, number int, body string) (*github.IssueComment, error)

	// ClosingIssues returns the issues the PR references as closed-by.
	ClosingIssues(ctx context.Context, number int) ([]githubapi.LinkedIssue, error)

	// GetPullRequest fetches PR metadata (author login/type).
	GetPullRequest(ctx context.Context, number int) (*github.PullRequest, error)
}
