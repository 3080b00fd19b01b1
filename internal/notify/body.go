package notify

import (
	"fmt"
	"strings"
)

// maxListedFiles bounds how many changed files are listed literally before
// the remainder collapses into a single count line.
const maxListedFiles = 80

// reviewMention asks the review automation agent to pick up the PR.
const reviewMention = "@coderabbitai review"

// defaultChecks is reported when validation passed but the caller did not
// name the checks that ran.
var defaultChecks = []string{
	"breaking-change detection",
	"lint",
	"format",
}

// BuildBody assembles the full report comment for a contract-change
// notification. Pure and deterministic: identical inputs produce identical
// bodies, which is what makes the marker-scan dedup sound.
func BuildBody(kind Kind, rc ReviewContext, files []string, diff string) string {
	sections := []string{
		Marker(kind, rc.HeadSHA),
		reviewMention,
		validationSection(rc),
		metadataSection(rc, len(files)),
		focusSection(rc),
		fileSection(files),
		diffSection(diff),
	}
	return strings.Join(sections, "\n\n")
}

// BuildLinkedIssueReminder composes the reminder posted when a PR authored
// by a human closes no open issue.
func BuildLinkedIssueReminder(rc ReviewContext) string {
	sections := []string{
		Marker(KindMissingLinkedIssue, rc.HeadSHA),
		"This pull request does not close any open issue.",
		"Please link the issue it addresses (for example `Closes #123` in the description) so the change stays traceable, or open one if it does not exist yet.",
	}
	return strings.Join(sections, "\n\n")
}

func validationSection(rc ReviewContext) string {
	if rc.Validation == ValidationPassed {
		checks := rc.Checks
		if len(checks) == 0 {
			checks = defaultChecks
		}
		lines := []string{"**Schema validation:** passed"}
		for _, check := range checks {
			lines = append(lines, fmt.Sprintf("- %s", check))
		}
		return strings.Join(lines, "\n")
	}

	line := "**Schema validation:** skipped"
	if rc.ScopeReason != "" {
		line += fmt.Sprintf(" (%s)", rc.ScopeReason)
	}
	return line
}

func metadataSection(rc ReviewContext, fileCount int) string {
	lines := []string{
		"**Change metadata**",
		fmt.Sprintf("- Base: `%s`", rc.BaseSHA),
		fmt.Sprintf("- Head: `%s`", rc.HeadSHA),
		fmt.Sprintf("- Changed files: %d", fileCount),
		fmt.Sprintf("- Scope: %s", rc.ScopeMode),
	}
	if rc.ScopeReason != "" {
		lines = append(lines, fmt.Sprintf("- Scope reason: %s", rc.ScopeReason))
	}
	return strings.Join(lines, "\n")
}

func focusSection(rc ReviewContext) string {
	if rc.Validation == ValidationPassed {
		return strings.Join([]string{
			"**Review focus**",
			"Automated checks passed; please verify the rules tooling cannot:",
			"- No field numbers renumbered or reused",
			"- No enum values reused",
			"- No incompatible type changes",
			"- Package or service renames must carry migration notes",
			"- Generated artifacts match the updated definitions",
		}, "\n")
	}

	return strings.Join([]string{
		"**Review focus**",
		"Schema validation did not run for this change. Please review all contract changes in full and flag anything that alters implicit compatibility guarantees.",
	}, "\n")
}

func fileSection(files []string) string {
	if len(files) == 0 {
		return "**Changed files:** none detected"
	}

	lines := []string{"**Changed files**"}
	listed := files
	if len(files) > maxListedFiles {
		listed = files[:maxListedFiles]
	}
	for _, file := range listed {
		lines = append(lines, fmt.Sprintf("- `%s`", file))
	}
	if rest := len(files) - maxListedFiles; rest > 0 {
		lines = append(lines, fmt.Sprintf("...and %d more files", rest))
	}
	return strings.Join(lines, "\n")
}

func diffSection(diff string) string {
	if strings.TrimSpace(diff) == "" {
		return "_No diff detected._"
	}
	return "```diff\n" + diff + "\n```"
}
