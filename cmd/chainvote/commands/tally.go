package commands

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"chainvote/internal/crypto"
	"chainvote/internal/domain"
)

func tallyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tally",
		Short: "Print the current vote counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withTimeout(cmd)
			defer cancel()

			conn, err := appCtx.Voting.Connect(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Contract: %s\nAccount:  %s\n", conn.Contract.Hex(), crypto.Fingerprint(conn.Account))
			printTally(cmd.OutOrStdout(), conn.Tally)
			return nil
		},
	}
}

func printTally(w io.Writer, t domain.Tally) {
	fmt.Fprintf(w, "Yes votes:   %s\n", humanize.BigComma(t.Count(domain.ChoiceYes)))
	fmt.Fprintf(w, "No votes:    %s\n", humanize.BigComma(t.Count(domain.ChoiceNo)))
	fmt.Fprintf(w, "Total votes: %s\n", humanize.BigComma(t.Total()))
}
