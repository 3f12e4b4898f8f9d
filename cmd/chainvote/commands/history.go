package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"chainvote/internal/crypto"
	"chainvote/internal/domain"
)

func historyCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List votes cast from this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			receipts, err := appCtx.Receipts.ListReceipts()
			if err != nil {
				return err
			}
			if len(receipts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No votes recorded.")
				return nil
			}
			if limit > 0 && len(receipts) > limit {
				receipts = receipts[len(receipts)-limit:]
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("WHEN", "VOTE", "ACCOUNT", "BLOCK", "TX", "YES", "NO")
			// Most recent first.
			for i := len(receipts) - 1; i >= 0; i-- {
				r := receipts[i]
				t.Row(
					humanize.Time(r.At),
					r.Choice.String(),
					crypto.Fingerprint(r.Account),
					humanize.Comma(int64(r.BlockNumber)),
					r.TxHash.TerminalString(),
					humanize.BigComma(r.After.Count(domain.ChoiceYes)),
					humanize.BigComma(r.After.Count(domain.ChoiceNo)),
				)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show only the last N votes")
	return cmd
}
