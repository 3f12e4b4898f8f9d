package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"chainvote/internal/crypto"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a wallet key and store it securely",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			addr, err := appCtx.Accounts.GenerateWallet(passphrase)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wallet created.\nAddress: %s\nFingerprint: %s\n", addr.Hex(), crypto.Fingerprint(addr))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing wallet key")
	return cmd
}
