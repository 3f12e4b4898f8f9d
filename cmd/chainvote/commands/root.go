package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"chainvote/internal/app"
	"chainvote/internal/logging"
)

var (
	home       string
	configFile string
	passphrase string
	rpcURL     string
	contract   string
	walletKind string
	walletRPC  string
	verbose    bool
	force      bool

	appCtx *app.App
	logger *zap.Logger
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	defer cleanup()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "chainvote",
		Short:        "Vote yes or no on an on-chain ballot",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         runUI,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".chainvote")
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			// The interactive screen owns the terminal, so it logs to a file.
			logOpts := logging.Options{Level: cfg.Logging.Level, Verbose: verbose}
			if interactive(cmd) {
				if err := os.MkdirAll(home, 0o700); err != nil {
					return err
				}
				logOpts.File = cfg.Logging.File
			}
			logger, err = logging.New(logOpts)
			if err != nil {
				return err
			}

			if passphrase == "" {
				passphrase = os.Getenv("CHAINVOTE_PASSPHRASE")
			}
			appCtx, err = app.NewWire(cfg, app.WireOptions{
				Passphrase: passphrase,
				Overwrite:  force,
				Logger:     logger,
			})
			return err
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "data dir (default ~/.chainvote)")
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default <home>/config.yaml)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the local wallet")
	root.PersistentFlags().StringVar(&rpcURL, "rpc", "", "Ethereum JSON-RPC endpoint")
	root.PersistentFlags().StringVar(&contract, "contract", "", "ballot contract address")
	root.PersistentFlags().StringVar(&walletKind, "wallet", "", "wallet provider: local or rpc")
	root.PersistentFlags().StringVar(&walletRPC, "wallet-rpc", "", "JSON-RPC endpoint of the rpc wallet (default --rpc)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		uiCmd(),
		initCmd(),
		importCmd(),
		addressCmd(),
		tallyCmd(),
		voteCmd(),
		historyCmd(),
	)
	return root
}

// loadConfig layers defaults, the config file, .env, the environment and
// finally explicitly set flags.
func loadConfig(cmd *cobra.Command) (app.Config, error) {
	cfg := app.DefaultConfig(home)

	path := configFile
	if path == "" {
		path = app.ConfigPath(home)
	}
	if err := app.LoadConfigFile(path, &cfg); err != nil {
		return cfg, err
	}
	if err := app.LoadDotEnv(".env"); err != nil {
		return cfg, err
	}
	if err := app.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("rpc") {
		cfg.RPCURL = rpcURL
	}
	if flags.Changed("contract") {
		cfg.ContractAddress = contract
	}
	if flags.Changed("wallet") {
		cfg.Wallet = walletKind
	}
	if flags.Changed("wallet-rpc") {
		cfg.WalletRPCURL = walletRPC
	}
	return cfg, nil
}

func interactive(cmd *cobra.Command) bool {
	return cmd.Name() == "ui" || !cmd.HasParent()
}

func cleanup() {
	if appCtx != nil {
		appCtx.Close()
		appCtx = nil
	}
	if logger != nil {
		_ = logger.Sync()
		logger = nil
	}
}

// requirePassphrase fails early for commands that decrypt the local wallet.
func requirePassphrase() error {
	if passphrase == "" {
		return fmt.Errorf("passphrase required (-p)")
	}
	return nil
}

// dialTimeout is the allowance for connecting and reading on top of the
// confirmation timeout.
const dialTimeout = 30 * time.Second

// withTimeout bounds a whole command: connecting, voting and confirmation.
// Without a confirmation timeout only cancellation ends it.
func withTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	d := commandTimeout(appCtx.Settings.ConfirmTimeout)
	if d == 0 {
		return context.WithCancel(cmd.Context())
	}
	return context.WithTimeout(cmd.Context(), d)
}

// commandTimeout is the budget for one round trip given the confirmation
// timeout. Zero means unbounded.
func commandTimeout(confirm time.Duration) time.Duration {
	if confirm <= 0 {
		return 0
	}
	return confirm + dialTimeout
}
