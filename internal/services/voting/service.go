package voting

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chainvote/internal/crypto"
	"chainvote/internal/domain"
	"chainvote/internal/wallet"
)

// BindFunc produces the contract binding once a signer is available.
type BindFunc func(ctx context.Context) (domain.Ballot, error)

// Options configures a Service.
type Options struct {
	// Receipts records successful votes. Nil disables the journal.
	Receipts domain.ReceiptStore
	// ConfirmTimeout bounds the wait for a vote to be mined. Zero waits for
	// as long as the caller's context allows.
	ConfirmTimeout time.Duration
	Logger         *zap.Logger

	now   func() time.Time
	newID func() string
}

// Service implements domain.VotingService.
type Service struct {
	provider domain.WalletProvider
	bind     BindFunc
	opts     Options
	log      *zap.Logger

	mu     sync.Mutex
	signer domain.Signer
	ballot domain.Ballot
	tally  domain.Tally
}

// New returns a disconnected voting service.
func New(provider domain.WalletProvider, bind BindFunc, opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.now == nil {
		opts.now = time.Now
	}
	if opts.newID == nil {
		opts.newID = uuid.NewString
	}
	return &Service{
		provider: provider,
		bind:     bind,
		opts:     opts,
		log:      opts.Logger,
		tally:    domain.ZeroTally(),
	}
}

// Connect authorises an account, binds the contract and reads the tallies.
// When the tally read fails the binding is kept, so Cast can still be used.
func (s *Service) Connect(ctx context.Context) (domain.Connection, error) {
	if s.provider == nil {
		s.log.Error("wallet not available", zap.Error(domain.ErrWalletUnavailable))
		return domain.Connection{}, domain.ErrWalletUnavailable
	}

	accounts, err := s.provider.Accounts(ctx)
	if err != nil {
		s.log.Error("list accounts failed", zap.Error(err))
		return domain.Connection{}, fmt.Errorf("list accounts: %w", err)
	}
	if len(accounts) == 0 {
		s.log.Debug("no authorised accounts, requesting access")
		accounts, err = s.provider.RequestAccounts(ctx)
		if err != nil {
			s.log.Error("account authorization failed", zap.Error(err))
			return domain.Connection{}, err
		}
		if len(accounts) == 0 {
			s.log.Error("wallet granted no accounts")
			return domain.Connection{}, domain.ErrAuthorizationRejected
		}
	}
	signer := wallet.NewSigner(s.provider, accounts[0])

	b, err := s.bind(ctx)
	if err != nil {
		s.log.Error("contract binding failed", zap.Error(err))
		return domain.Connection{}, fmt.Errorf("bind contract: %w", err)
	}

	s.mu.Lock()
	s.signer = signer
	s.ballot = b
	s.mu.Unlock()

	conn := domain.Connection{
		Account:  signer.Address(),
		Contract: b.Address(),
	}
	s.log.Info("connected",
		zap.String("account", signer.Address().Hex()),
		zap.String("contract", b.Address().Hex()),
	)

	tally, err := s.Tally(ctx)
	conn.Tally = tally
	return conn, err
}

// Tally re-reads the counters. On failure the last known tally is returned
// alongside the error.
func (s *Service) Tally(ctx context.Context) (domain.Tally, error) {
	s.mu.Lock()
	b := s.ballot
	last := s.tally
	s.mu.Unlock()

	if b == nil {
		s.log.Error("tally requested before connect", zap.Error(domain.ErrNotConnected))
		return last, domain.ErrNotConnected
	}
	tally, err := b.Tally(ctx)
	if err != nil {
		s.log.Error("read tallies failed", zap.Error(err))
		return last, fmt.Errorf("read tallies: %w", err)
	}

	s.mu.Lock()
	s.tally = tally
	s.mu.Unlock()
	s.log.Debug("tallies read", zap.Stringer("tally", tally))
	return tally, nil
}

// LastTally returns the most recently read tallies without a network call.
func (s *Service) LastTally() domain.Tally {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tally
}

// Account returns the connected account, if any.
func (s *Service) Account() (domain.Signer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signer, s.signer != nil
}

// Cast signs and submits a vote, waits for it to be mined and refreshes the
// tallies.
func (s *Service) Cast(ctx context.Context, choice domain.Choice) (domain.Receipt, error) {
	s.mu.Lock()
	signer, b := s.signer, s.ballot
	s.mu.Unlock()

	if signer == nil || b == nil {
		s.log.Error("vote attempted before connect", zap.Error(domain.ErrNotConnected))
		return domain.Receipt{}, domain.ErrNotConnected
	}
	log := s.log.With(
		zap.Stringer("choice", choice),
		zap.String("account", signer.Address().Hex()),
	)

	payload, err := crypto.VotePayload(choice)
	if err != nil {
		log.Error("build vote payload failed", zap.Error(err))
		return domain.Receipt{}, err
	}
	sig, err := signer.SignMessage(ctx, payload)
	if err != nil {
		log.Error("sign vote failed", zap.Error(err))
		return domain.Receipt{}, fmt.Errorf("sign vote: %w", err)
	}
	sigHash := crypto.SignatureHash(sig)

	txHash, err := b.Vote(ctx, signer, choice, sigHash)
	if err != nil {
		log.Error("submit vote failed", zap.Error(err))
		return domain.Receipt{}, fmt.Errorf("submit vote: %w", err)
	}
	log = log.With(zap.String("tx", txHash.Hex()))
	log.Info("vote submitted, waiting for confirmation")

	waitCtx := ctx
	if s.opts.ConfirmTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, s.opts.ConfirmTimeout)
		defer cancel()
	}
	mined, err := b.WaitMined(waitCtx, txHash)
	if err != nil {
		log.Error("vote transaction failed", zap.Error(err))
		return domain.Receipt{}, fmt.Errorf("wait for vote: %w", err)
	}

	tally, err := s.Tally(ctx)
	if err != nil {
		return domain.Receipt{}, err
	}

	receipt := domain.Receipt{
		ID:            s.opts.newID(),
		Choice:        choice,
		Account:       signer.Address(),
		Contract:      b.Address(),
		TxHash:        txHash,
		Signature:     sig,
		SignatureHash: sigHash,
		GasUsed:       mined.GasUsed,
		After:         tally,
		At:            s.opts.now().UTC(),
	}
	if mined.BlockNumber != nil {
		receipt.BlockNumber = mined.BlockNumber.Uint64()
	}
	log.Info("vote confirmed",
		zap.Uint64("block", receipt.BlockNumber),
		zap.Stringer("tally", tally),
	)

	if s.opts.Receipts != nil {
		if err := s.opts.Receipts.AppendReceipt(receipt); err != nil {
			log.Warn("record receipt failed", zap.Error(err))
		}
	}
	return receipt, nil
}

// Compile-time assertion that Service implements domain.VotingService.
var _ domain.VotingService = (*Service)(nil)
