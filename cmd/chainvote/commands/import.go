package commands

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	var (
		hexKey       string
		keystorePath string
		keystorePass string
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import an existing private key or keystore file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			var (
				addr common.Address
				err  error
			)
			switch {
			case hexKey != "" && keystorePath != "":
				return fmt.Errorf("use either --key or --keystore, not both")
			case hexKey != "":
				addr, err = appCtx.Accounts.ImportPrivateKey(passphrase, hexKey)
			case keystorePath != "":
				b, rerr := os.ReadFile(keystorePath)
				if rerr != nil {
					return rerr
				}
				addr, err = appCtx.Accounts.ImportKeystore(passphrase, b, keystorePass)
			default:
				return fmt.Errorf("nothing to import. use --key or --keystore")
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wallet imported.\nAddress: %s\n", addr.Hex())
			return nil
		},
	}
	cmd.Flags().StringVar(&hexKey, "key", "", "hex encoded secp256k1 private key")
	cmd.Flags().StringVar(&keystorePath, "keystore", "", "path to an Ethereum v3 keystore file")
	cmd.Flags().StringVar(&keystorePass, "keystore-pass", "", "passphrase of the keystore file")
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing wallet key")
	return cmd
}
