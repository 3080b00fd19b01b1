package notify

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-github/v66/github"

	"github.com/sdkci/protobot/internal/githubapi"
)

// fakeAPI implements API with overridable behavior per call, recording every
// created comment.
type fakeAPI struct {
	ListIssueCommentsFunc  func(ctx context.Context, number, page, perPage int) ([]*github.IssueComment, int, error)
	CreateIssueCommentFunc func(ctx context.Context, number int, body string) (*github.IssueComment, error)
	ClosingIssuesFunc      func(ctx context.Context, number int) ([]githubapi.LinkedIssue, error)
	GetPullRequestFunc     func(ctx context.Context, number int) (*github.PullRequest, error)

	CreatedBodies []string
}

func (f *fakeAPI) ListIssueComments(ctx context.Context, number, page, perPage int) ([]*github.IssueComment, int, error) {
	if f.ListIssueCommentsFunc != nil {
		return f.ListIssueCommentsFunc(ctx, number, page, perPage)
	}
	return nil, 0, nil
}

func (f *fakeAPI) CreateIssueComment(ctx context.Context, number int, body string) (*github.IssueComment, error) {
	f.CreatedBodies = append(f.CreatedBodies, body)
	if f.CreateIssueCommentFunc != nil {
		return f.CreateIssueCommentFunc(ctx, number, body)
	}
	return &github.IssueComment{ID: github.Int64(int64(len(f.CreatedBodies)))}, nil
}

func (f *fakeAPI) ClosingIssues(ctx context.Context, number int) ([]githubapi.LinkedIssue, error) {
	if f.ClosingIssuesFunc != nil {
		return f.ClosingIssuesFunc(ctx, number)
	}
	return nil, nil
}

func (f *fakeAPI) GetPullRequest(ctx context.Context, number int) (*github.PullRequest, error) {
	if f.GetPullRequestFunc != nil {
		return f.GetPullRequestFunc(ctx, number)
	}
	return &github.PullRequest{
		User: &github.User{Login: github.String("someone"), Type: github.String("User")},
	}, nil
}

// commentThread builds a single-page listing from plain bodies.
func commentThread(bodies ...string) func(ctx context.Context, number, page, perPage int) ([]*github.IssueComment, int, error) {
	return func(_ context.Context, _, _, _ int) ([]*github.IssueComment, int, error) {
		comments := make([]*github.IssueComment, 0, len(bodies))
		for i, body := range bodies {
			comments = append(comments, &github.IssueComment{
				ID:   github.Int64(int64(i + 1)),
				Body: github.String(body),
			})
		}
		return comments, 0, nil
	}
}

func testLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
