package notify

import (
	"context"
	"log/slog"
	"strings"
)

// GuardPolicy resolves an uncertain dedup scan result.
type GuardPolicy int

const (
	// FailClosed treats scan errors and cap exhaustion as "already
	// posted": a notification may be missed, but never duplicated.
	FailClosed GuardPolicy = iota
	// FailOpen treats the same conditions as "not posted": at most one
	// duplicate instead of a silently missing notification.
	FailOpen
)

const (
	// maxCommentScan caps how many comments the guard inspects per run.
	maxCommentScan = 500
	scanPageSize   = 100
)

// Guard checks an issue's comment thread for a dedup marker. It only reads;
// all memory of prior notifications lives in the thread itself.
type Guard struct {
	api    API
	policy GuardPolicy
	logger *slog.Logger
	owner  string
	repo   string
}

// NewGuard creates a guard over the given API with the given policy.
func NewGuard(api API, policy GuardPolicy, logger *slog.Logger, owner, repo string) *Guard {
	return &Guard{api: api, policy: policy, logger: logger, owner: owner, repo: repo}
}

// AlreadyPosted reports whether any comment on the issue contains marker.
// Listing errors and scan-cap exhaustion resolve per the guard's policy and
// are never propagated as faults.
func (g *Guard) AlreadyPosted(ctx context.Context, number int, marker string) bool {
	scanned := 0
	page := 1

	for {
		comments, next, err := g.api.ListIssueComments(ctx, number, page, scanPageSize)
		if err != nil {
			g.logger.Error("comment scan failed",
				"owner", g.owner, "repo", g.repo, "number", number, "page", page, "err", err)
			return g.fallback()
		}

		for _, c := range comments {
			if strings.Contains(c.GetBody(), marker) {
				return true
			}
			scanned++
			if scanned >= maxCommentScan {
				g.logger.Warn("comment scan cap reached",
					"owner", g.owner, "repo", g.repo, "number", number, "cap", maxCommentScan)
				return g.fallback()
			}
		}

		if next == 0 {
			return false
		}
		page = next
	}
}

func (g *Guard) fallback() bool {
	return g.policy == FailClosed
}
