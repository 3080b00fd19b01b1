package notify

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sdkci/protobot/internal/githubapi"
)

// Notifier runs one notification kind against a pull request. Each kind is
// a configuration of the shared primitives (marker prefix, guard policy,
// body template), not a separate implementation.
type Notifier struct {
	api       API
	logger    *slog.Logger
	kind      Kind
	policy    GuardPolicy
	diffLimit int
}

// New creates a notifier for the given kind. All shipped kinds default to a
// fail-closed guard: a notification that re-fires on the next push is
// cheaper than a duplicate comment nobody deletes.
func New(api API, logger *slog.Logger, kind Kind) *Notifier {
	return &Notifier{
		api:       api,
		logger:    logger,
		kind:      kind,
		policy:    FailClosed,
		diffLimit: DefaultDiffLimit,
	}
}

// WithPolicy overrides the guard's fail-safe direction.
func (n *Notifier) WithPolicy(policy GuardPolicy) *Notifier {
	n.policy = policy
	return n
}

// WithDiffLimit overrides the diff excerpt character budget.
func (n *Notifier) WithDiffLimit(limit int) *Notifier {
	n.diffLimit = limit
	return n
}

// Run executes the staged decision flow for the notifier's kind. Every
// no-op path returns nil; only unexpected posting failures propagate.
func (n *Notifier) Run(ctx context.Context, rc ReviewContext) error {
	log := n.logger.With(
		"kind", string(n.kind),
		"owner", rc.Owner, "repo", rc.Repo, "number", rc.Number)

	if rc.Number <= 0 || rc.Owner == "" || rc.Repo == "" {
		log.Info("no pull request in triggering event, nothing to do")
		return nil
	}
	if missing := n.missingFields(rc); len(missing) > 0 {
		log.Warn("required context missing, skipping", "missing", strings.Join(missing, ", "))
		return nil
	}

	if n.kind == KindMissingLinkedIssue {
		return n.runLinkedIssue(ctx, log, rc)
	}
	return n.runContractChange(ctx, log, rc)
}

// missingFields returns the required context fields absent for this kind.
func (n *Notifier) missingFields(rc ReviewContext) []string {
	var missing []string
	if rc.HeadSHA == "" {
		missing = append(missing, "head revision")
	}
	if n.kind == KindMissingLinkedIssue {
		return missing
	}
	if rc.BaseSHA == "" {
		missing = append(missing, "base revision")
	}
	if rc.ChangedFilesPath == "" {
		missing = append(missing, "changed file list")
	}
	return missing
}

func (n *Notifier) runLinkedIssue(ctx context.Context, log *slog.Logger, rc ReviewContext) error {
	author, authorType := rc.Author, rc.AuthorType
	if author == "" {
		pr, err := n.api.GetPullRequest(ctx, rc.Number)
		if err != nil {
			log.Error("pull request lookup failed, skipping", "err", err)
			return nil
		}
		author = pr.GetUser().GetLogin()
		authorType = pr.GetUser().GetType()
	}
	if IsBotAuthor(author, authorType) {
		log.Info("bot-authored pull request, skipping", "author", author)
		return nil
	}

	linked, err := n.api.ClosingIssues(ctx, rc.Number)
	if err != nil {
		// Link state unknown: never remind on guesswork.
		log.Error("linked issue query failed, skipping", "err", err)
		return nil
	}
	for _, issue := range linked {
		if strings.EqualFold(issue.State, "OPEN") {
			log.Info("open linked issue found, nothing to do", "issue", issue.Number)
			return nil
		}
	}

	marker := Marker(n.kind, rc.HeadSHA)
	guard := NewGuard(n.api, n.policy, n.logger, rc.Owner, rc.Repo)
	if guard.AlreadyPosted(ctx, rc.Number, marker) {
		log.Info("reminder already posted for this head", "head", rc.HeadSHA)
		return nil
	}

	return n.post(ctx, log, rc, BuildLinkedIssueReminder(rc))
}

func (n *Notifier) runContractChange(ctx context.Context, log *slog.Logger, rc ReviewContext) error {
	raw, err := os.ReadFile(rc.ChangedFilesPath)
	if err != nil {
		log.Warn("changed file list unreadable, skipping", "path", rc.ChangedFilesPath, "err", err)
		return nil
	}
	files := ParseUniqueLines(string(raw))

	diff, ok := n.readDiff(log, rc)
	if !ok {
		return nil
	}
	if n.kind == KindGeneratedDiff && strings.TrimSpace(diff) == "" {
		// No generated-artifact drift worth flagging.
		log.Info("empty generated diff, nothing to do")
		return nil
	}

	excerpt, truncated := Truncate(diff, n.diffLimit)
	if truncated {
		log.Info("diff excerpt truncated", "limit", n.diffLimit)
	}

	marker := Marker(n.kind, rc.HeadSHA)
	guard := NewGuard(n.api, n.policy, n.logger, rc.Owner, rc.Repo)
	if guard.AlreadyPosted(ctx, rc.Number, marker) {
		log.Info("notification already posted for this head", "head", rc.HeadSHA)
		return nil
	}

	return n.post(ctx, log, rc, BuildBody(n.kind, rc, files, excerpt))
}

// readDiff loads the optional diff excerpt source. A missing file behaves
// like an empty diff; any other read failure is a fail-safe skip.
func (n *Notifier) readDiff(log *slog.Logger, rc ReviewContext) (string, bool) {
	if rc.DiffPath == "" {
		return "", true
	}

	raw, err := os.ReadFile(rc.DiffPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", true
		}
		log.Warn("diff file unreadable, skipping", "path", rc.DiffPath, "err", err)
		return "", false
	}
	return string(raw), true
}

func (n *Notifier) post(ctx context.Context, log *slog.Logger, rc ReviewContext, body string) error {
	if rc.DryRun {
		log.Info("dry run, comment suppressed", "body", body)
		return nil
	}

	if _, err := n.api.CreateIssueComment(ctx, rc.Number, body); err != nil {
		if githubapi.IsPermissionError(err) {
			// Expected when the token cannot comment, e.g. runs
			// triggered from forked repositories.
			log.Warn("comment rejected for missing permissions, ignoring", "err", err)
			return nil
		}
		return fmt.Errorf("post %s comment on %s/%s#%d: %w", n.kind, rc.Owner, rc.Repo, rc.Number, err)
	}

	log.Info("comment posted", "head", rc.HeadSHA)
	return nil
}
