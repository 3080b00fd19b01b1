// Package cli defines protobot's command-line interface: one subcommand per
// notification kind, invoked once per CI trigger.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/sdkci/protobot/internal/notify"
)

// Execute builds the root command and runs it with the provided args.
func Execute(args []string) error {
	rootCmd := newRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func newRootCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:          "protobot",
		Short:        "CI helpers that post review notifications on pull requests",
		Long:         "protobot is invoked by CI on pull request events and posts at most one comment per notification kind and head revision, deduplicated through a hidden marker in the comment body.",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "compose and log the comment without posting it")

	cmd.AddCommand(
		newNotifyCommand("linked-issue", "Remind the author when a pull request closes no open issue", notify.KindMissingLinkedIssue, &dryRun),
		newNotifyCommand("proto-impact", "Request a compatibility-focused review for protobuf contract changes", notify.KindProtoImpact, &dryRun),
		newNotifyCommand("generated-diff", "Flag drift between generated artifacts and their definitions", notify.KindGeneratedDiff, &dryRun),
	)

	return cmd
}

func newNotifyCommand(use, short string, kind notify.Kind, dryRun *bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), kind, *dryRun)
		},
	}
}
