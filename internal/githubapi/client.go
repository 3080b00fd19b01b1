// Package githubapi wraps the GitHub API surface protobot consumes: issue
// comment listing and creation, the closing-issues GraphQL query, pull
// request metadata, and GitHub App authentication.
package githubapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v66/github"
)

// LinkedIssue is one issue a pull request would close on merge.
type LinkedIssue struct {
	Number int
	State  string // "OPEN" or "CLOSED"
}

// Client wraps a go-github client scoped to a single repository.
type Client struct {
	gh    *github.Client
	owner string
	name  string
}

// New creates a client around an existing go-github client.
func New(gh *github.Client, owner, name string) *Client {
	return &Client{gh: gh, owner: owner, name: name}
}

// NewWithToken creates a client authenticated with a bearer token.
// An empty token yields an unauthenticated client.
func NewWithToken(token, owner, name string) *Client {
	gh := github.NewClient(nil)
	if token != "" {
		gh = gh.WithAuthToken(token)
	}
	return New(gh, owner, name)
}

// ListIssueComments returns one page of comments on an issue or PR plus the
// next page number, zero when the listing is exhausted.
func (c *Client) ListIssueComments(ctx context.Context, number, page, perPage int) ([]*github.IssueComment, int, error) {
	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{Page: page, PerPage: perPage},
	}
	comments, resp, err := c.gh.Issues.ListComments(ctx, c.owner, c.name, number, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list comments on %s/%s#%d: %w", c.owner, c.name, number, err)
	}
	return comments, resp.NextPage, nil
}

// CreateIssueComment posts a new comment on an issue or PR.
func (c *Client) CreateIssueComment(ctx context.Context, number int, body string) (*github.IssueComment, error) {
	comment, _, err := c.gh.Issues.CreateComment(ctx, c.owner, c.name, number, &github.IssueComment{
		Body: github.String(body),
	})
	if err != nil {
		return nil, fmt.Errorf("create comment on %s/%s#%d: %w", c.owner, c.name, number, err)
	}
	return comment, nil
}

// GetPullRequest fetches a single pull request's metadata.
func (c *Client) GetPullRequest(ctx context.Context, number int) (*github.PullRequest, error) {
	pr, _, err := c.gh.PullRequests.Get(ctx, c.owner, c.name, number)
	if err != nil {
		return nil, fmt.Errorf("get pull request %s/%s#%d: %w", c.owner, c.name, number, err)
	}
	return pr, nil
}

const closingIssuesQuery = `query($owner: String!, $name: String!, $number: Int!) {
  repository(owner: $owner, name: $name) {
    pullRequest(number: $number) {
      closingIssuesReferences(first: 50) {
        nodes { number state }
      }
    }
  }
}`

// ClosingIssues returns the issues a pull request references as closed-by,
// with their current state. The query goes through the GraphQL endpoint of
// the same API host the REST client talks to.
func (c *Client) ClosingIssues(ctx context.Context, number int) ([]LinkedIssue, error) {
	payload := map[string]any{
		"query": closingIssuesQuery,
		"variables": map[string]any{
			"owner":  c.owner,
			"name":   c.name,
			"number": number,
		},
	}

	req, err := c.gh.NewRequest(http.MethodPost, "graphql", payload)
	if err != nil {
		return nil, fmt.Errorf("build closing issues query for %s/%s#%d: %w", c.owner, c.name, number, err)
	}

	var out struct {
		Data struct {
			Repository struct {
				PullRequest struct {
					ClosingIssuesReferences struct {
						Nodes []struct {
							Number int    `json:"number"`
							State  string `json:"state"`
						} `json:"nodes"`
					} `json:"closingIssuesReferences"`
				} `json:"pullRequest"`
			} `json:"repository"`
		} `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}

	if _, err := c.gh.Do(ctx, req, &out); err != nil {
		return nil, fmt.Errorf("closing issues query for %s/%s#%d: %w", c.owner, c.name, number, err)
	}
	if len(out.Errors) > 0 {
		return nil, fmt.Errorf("closing issues query for %s/%s#%d: %s", c.owner, c.name, number, out.Errors[0].Message)
	}

	nodes := out.Data.Repository.PullRequest.ClosingIssuesReferences.Nodes
	issues := make([]LinkedIssue, 0, len(nodes))
	for _, node := range nodes {
		issues = append(issues, LinkedIssue{Number: node.Number, State: node.State})
	}
	return issues, nil
}
