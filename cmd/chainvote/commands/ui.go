package commands

import (
	"github.com/spf13/cobra"

	"chainvote/internal/tui"
)

func uiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive voting screen",
		Args:  cobra.NoArgs,
		RunE:  runUI,
	}
}

func runUI(cmd *cobra.Command, args []string) error {
	opts := tui.Options{
		Question: appCtx.Config.Question,
		Footer:   appCtx.Config.Footer,
		Timeout:  commandTimeout(appCtx.Settings.ConfirmTimeout),
	}
	if appCtx.NeedsPassphrase() {
		opts.Unlock = appCtx.Passphrase.Set
	}
	return tui.Run(appCtx.Voting, opts)
}
