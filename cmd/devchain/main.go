package main

import (
	"context"
	"errors"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"chainvote/internal/app"
	"chainvote/internal/devchain"
	"chainvote/internal/logging"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		addr     string
		contract string
		chainID  uint64
		yes, no  int64
		verbose  bool
	)
	cmd := &cobra.Command{
		Use:          "devchain",
		Short:        "In-memory Ethereum node hosting the ballot contract",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logging.New(logging.Options{Verbose: verbose})
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if !common.IsHexAddress(contract) {
				return errors.New("invalid --contract address")
			}
			chain := devchain.New(common.HexToAddress(contract))
			chain.ID = new(big.Int).SetUint64(chainID)
			chain.SetTally(yes, no)

			srv, err := devchain.NewServer(chain)
			if err != nil {
				return err
			}
			defer srv.Stop()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return serve(ctx, log, addr, srv)
		},
	}
	cmd.Flags().StringVar(&addr, "listen", "127.0.0.1:8545", "listen address")
	cmd.Flags().StringVar(&contract, "contract", app.DefaultContractAddress, "address the ballot is deployed at")
	cmd.Flags().Uint64Var(&chainID, "chain-id", 1337, "chain ID")
	cmd.Flags().Int64Var(&yes, "yes", 0, "initial yes votes")
	cmd.Flags().Int64Var(&no, "no", 0, "initial no votes")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	return cmd
}

func serve(ctx context.Context, log *zap.Logger, addr string, h http.Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           accessLog(log, h),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- server.ListenAndServe() }()
	log.Info("devchain listening", zap.String("addr", addr))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func accessLog(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Int("status", rec.status),
			zap.Duration("took", time.Since(start)),
		)
	})
}
