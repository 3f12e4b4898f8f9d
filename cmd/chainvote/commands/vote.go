package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"chainvote/internal/domain"
)

// vote <yes|no>: sign the choice, submit it and wait until it is mined.
func voteCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "vote <yes|no>",
		Short:     "Cast a vote and wait for confirmation",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"yes", "no"},
		RunE: func(cmd *cobra.Command, args []string) error {
			choice, err := domain.ParseChoice(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := withTimeout(cmd)
			defer cancel()

			if _, err := appCtx.Voting.Connect(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Submitting %s vote, waiting for confirmation...\n", choice)
			r, err := appCtx.Voting.Cast(ctx, choice)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Vote mined in block %d.\nTx: %s\n", r.BlockNumber, r.TxHash.Hex())
			printTally(cmd.OutOrStdout(), r.After)
			return nil
		},
	}
}
