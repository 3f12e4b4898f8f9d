package commands

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"chainvote/internal/app"
	"chainvote/internal/crypto"
)

func addressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Print the wallet address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var addr common.Address
			if appCtx.Config.Wallet == app.WalletRPC {
				ctx, cancel := withTimeout(cmd)
				defer cancel()
				accounts, err := appCtx.Wallet.RequestAccounts(ctx)
				if err != nil {
					return err
				}
				addr = accounts[0]
			} else {
				if err := requirePassphrase(); err != nil {
					return err
				}
				a, err := appCtx.Accounts.WalletAddress(passphrase)
				if err != nil {
					return err
				}
				addr = a
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Address: %s\nFingerprint: %s\n", addr.Hex(), crypto.Fingerprint(addr))
			return nil
		},
	}
}
