package ballot

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"chainvote/internal/domain"
)

// DefaultPollInterval is how often WaitMined asks for a receipt.
const DefaultPollInterval = 2 * time.Second

// Options tunes transaction building and confirmation polling.
type Options struct {
	// ChainID pins the chain used for signing. Nil asks the node once.
	ChainID *big.Int
	// GasLimit is used as-is when non-zero; otherwise gas is estimated.
	GasLimit     uint64
	PollInterval time.Duration
	Logger       *zap.Logger
}

// Contract is a binding to one deployed ballot.
type Contract struct {
	address common.Address
	client  domain.ChainClient
	opts    Options
	log     *zap.Logger

	chainMu sync.Mutex
	chain   *big.Int
}

// Bind returns a binding for the contract at address.
func Bind(address common.Address, client domain.ChainClient, opts Options) (*Contract, error) {
	if address == (common.Address{}) {
		return nil, fmt.Errorf("ballot: contract address is required")
	}
	if client == nil {
		return nil, fmt.Errorf("ballot: chain client is required")
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Contract{
		address: address,
		client:  client,
		opts:    opts,
		log:     log.With(zap.String("contract", address.Hex())),
	}, nil
}

// Address returns the bound contract address.
func (c *Contract) Address() common.Address { return c.address }

// VerifyCode checks that the address holds contract code.
func (c *Contract) VerifyCode(ctx context.Context) error {
	code, err := c.client.CodeAt(ctx, c.address, nil)
	if err != nil {
		return fmt.Errorf("read code at %s: %w", c.address.Hex(), err)
	}
	if len(code) == 0 {
		return fmt.Errorf("%w %s", domain.ErrNoContract, c.address.Hex())
	}
	return nil
}

// YesVotes reads the yes counter.
func (c *Contract) YesVotes(ctx context.Context) (*big.Int, error) {
	return c.readCounter(ctx, methodYesVotes)
}

// NoVotes reads the no counter.
func (c *Contract) NoVotes(ctx context.Context) (*big.Int, error) {
	return c.readCounter(ctx, methodNoVotes)
}

// Tally reads both counters concurrently.
func (c *Contract) Tally(ctx context.Context) (domain.Tally, error) {
	var t domain.Tally
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		t.Yes, err = c.YesVotes(gctx)
		return err
	})
	g.Go(func() (err error) {
		t.No, err = c.NoVotes(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Tally{}, err
	}
	return t, nil
}

func (c *Contract) readCounter(ctx context.Context, method string) (*big.Int, error) {
	data, err := parsedABI.Pack(method)
	if err != nil {
		return nil, err
	}
	out, err := c.client.CallContract(ctx, ethereum.CallMsg{To: &c.address, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("call %s: %w %s", method, domain.ErrNoContract, c.address.Hex())
	}
	vals, err := parsedABI.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", method, err)
	}
	if len(vals) != 1 {
		return nil, fmt.Errorf("decode %s: unexpected output %v", method, vals)
	}
	n, ok := vals[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("decode %s: unexpected output %v", method, vals)
	}
	return n, nil
}

// Vote submits vote(choice, signatureHash) signed by signer and returns the
// transaction hash without waiting for it to be mined.
func (c *Contract) Vote(
	ctx context.Context,
	signer domain.Signer,
	choice domain.Choice,
	signatureHash common.Hash,
) (common.Hash, error) {
	if !choice.Valid() {
		return common.Hash{}, fmt.Errorf("invalid choice %q", choice)
	}
	data, err := parsedABI.Pack(methodVote, choice.Bool(), [32]byte(signatureHash))
	if err != nil {
		return common.Hash{}, err
	}

	chainID, err := c.chainID(ctx)
	if err != nil {
		return common.Hash{}, err
	}
	from := signer.Address()
	nonce, err := c.client.PendingNonceAt(ctx, from)
	if err != nil {
		return common.Hash{}, fmt.Errorf("pending nonce: %w", err)
	}
	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("suggest gas price: %w", err)
	}
	gas := c.opts.GasLimit
	if gas == 0 {
		gas, err = c.client.EstimateGas(ctx, ethereum.CallMsg{
			From:     from,
			To:       &c.address,
			GasPrice: gasPrice,
			Data:     data,
		})
		if err != nil {
			return common.Hash{}, fmt.Errorf("estimate gas: %w", err)
		}
	}

	tx := ethtypes.NewTx(&ethtypes.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gas,
		To:       &c.address,
		Value:    new(big.Int),
		Data:     data,
	})
	signed, err := signer.SignTransaction(ctx, tx, chainID)
	if err != nil {
		return common.Hash{}, fmt.Errorf("sign vote transaction: %w", err)
	}
	if err := c.client.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, fmt.Errorf("send vote transaction: %w", err)
	}
	c.log.Debug("vote transaction sent",
		zap.Stringer("tx", signed.Hash()),
		zap.Uint64("nonce", nonce),
		zap.Uint64("gas", gas),
	)
	return signed.Hash(), nil
}

// WaitMined blocks until txHash has a receipt. A receipt with failed status
// is returned together with domain.ErrTransactionFailed.
func (c *Contract) WaitMined(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error) {
	ticker := time.NewTicker(c.opts.PollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.client.TransactionReceipt(ctx, txHash)
		switch {
		case err == nil:
			if receipt.Status != ethtypes.ReceiptStatusSuccessful {
				return receipt, fmt.Errorf("%w: tx %s reverted", domain.ErrTransactionFailed, txHash.Hex())
			}
			return receipt, nil
		case errors.Is(err, ethereum.NotFound):
			c.log.Debug("transaction not yet mined", zap.Stringer("tx", txHash))
		default:
			return nil, fmt.Errorf("receipt for %s: %w", txHash.Hex(), err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// chainID returns the configured chain ID, or asks the node once and keeps
// the answer. Failures are not cached.
func (c *Contract) chainID(ctx context.Context) (*big.Int, error) {
	if c.opts.ChainID != nil && c.opts.ChainID.Sign() > 0 {
		return c.opts.ChainID, nil
	}
	c.chainMu.Lock()
	defer c.chainMu.Unlock()
	if c.chain != nil {
		return c.chain, nil
	}
	id, err := c.client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("chain id: %w", err)
	}
	c.chain = id
	return id, nil
}

var _ domain.Ballot = (*Contract)(nil)
