package devchain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"

	"chainvote/internal/ballot"
	"chainvote/internal/domain"
)

// Chain is an in-memory domain.ChainClient hosting a single ballot
// contract. Vote transactions are executed and mined as soon as they are
// sent.
type Chain struct {
	mu sync.Mutex

	Contract common.Address
	ID       *big.Int
	Yes, No  *big.Int
	GasPrice *big.Int

	// Fault injection. PendingPolls is how many TransactionReceipt calls
	// answer NotFound before the receipt shows up; Revert makes every vote
	// transaction fail; CallErr and SendErr fail the matching operations.
	PendingPolls int
	Revert       bool
	CallErr      error
	SendErr      error

	nonces   map[common.Address]uint64
	sent     []*ethtypes.Transaction
	receipts map[common.Hash]*ethtypes.Receipt
	polls    map[common.Hash]int
	calls    int
	block    uint64
}

// New returns a chain with the ballot deployed at contract.
func New(contract common.Address) *Chain {
	return &Chain{
		Contract: contract,
		ID:       big.NewInt(1337),
		Yes:      new(big.Int),
		No:       new(big.Int),
		GasPrice: big.NewInt(25_000_000_000),
		nonces:   make(map[common.Address]uint64),
		receipts: make(map[common.Hash]*ethtypes.Receipt),
		polls:    make(map[common.Hash]int),
		block:    100,
	}
}

// Sent returns the transactions broadcast so far.
func (c *Chain) Sent() []*ethtypes.Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*ethtypes.Transaction(nil), c.sent...)
}

// Calls returns how many eth_call requests were served.
func (c *Chain) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// SetTally overwrites the on-chain counters.
func (c *Chain) SetTally(yes, no int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Yes = big.NewInt(yes)
	c.No = big.NewInt(no)
}

func (c *Chain) ChainID(ctx context.Context) (*big.Int, error) {
	return new(big.Int).Set(c.ID), nil
}

func (c *Chain) CodeAt(ctx context.Context, contract common.Address, blockNumber *big.Int) ([]byte, error) {
	if contract != c.Contract {
		return nil, nil
	}
	return []byte{0x60, 0x80, 0x60, 0x40}, nil
}

func (c *Chain) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++

	if c.CallErr != nil {
		return nil, c.CallErr
	}
	if call.To == nil || *call.To != c.Contract {
		return nil, nil
	}
	if len(call.Data) < 4 {
		return nil, errors.New("execution reverted")
	}
	abi := ballot.ABI()
	method, err := abi.MethodById(call.Data[:4])
	if err != nil {
		return nil, err
	}
	switch method.Name {
	case "yesVotes":
		return method.Outputs.Pack(new(big.Int).Set(c.Yes))
	case "noVotes":
		return method.Outputs.Pack(new(big.Int).Set(c.No))
	}
	return nil, fmt.Errorf("unexpected call to %s", method.Name)
}

func (c *Chain) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nonces[account], nil
}

func (c *Chain) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return new(big.Int).Set(c.GasPrice), nil
}

func (c *Chain) EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error) {
	return 48_000, nil
}

func (c *Chain) SendTransaction(ctx context.Context, tx *ethtypes.Transaction) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.SendErr != nil {
		return c.SendErr
	}
	from, err := ethtypes.Sender(ethtypes.LatestSignerForChainID(c.ID), tx)
	if err != nil {
		return fmt.Errorf("invalid sender: %w", err)
	}
	if tx.Nonce() != c.nonces[from] {
		return fmt.Errorf("nonce too low: have %d, want %d", tx.Nonce(), c.nonces[from])
	}
	c.nonces[from]++
	c.sent = append(c.sent, tx)
	c.block++

	status := ethtypes.ReceiptStatusSuccessful
	if c.Revert {
		status = ethtypes.ReceiptStatusFailed
	} else if err := c.applyVote(tx.Data()); err != nil {
		status = ethtypes.ReceiptStatusFailed
	}
	c.receipts[tx.Hash()] = &ethtypes.Receipt{
		Type:              tx.Type(),
		Status:            status,
		CumulativeGasUsed: 45_123,
		TxHash:            tx.Hash(),
		GasUsed:           45_123,
		Logs:              []*ethtypes.Log{},
		BlockNumber:       new(big.Int).SetUint64(c.block),
		BlockHash:         common.BigToHash(new(big.Int).SetUint64(c.block)),
	}
	return nil
}

func (c *Chain) applyVote(data []byte) error {
	if len(data) < 4 {
		return errors.New("short calldata")
	}
	abi := ballot.ABI()
	method, err := abi.MethodById(data[:4])
	if err != nil {
		return err
	}
	if method.Name != "vote" {
		return fmt.Errorf("unexpected method %s", method.Name)
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return err
	}
	if args[0].(bool) {
		c.Yes = new(big.Int).Add(c.Yes, big.NewInt(1))
	} else {
		c.No = new(big.Int).Add(c.No, big.NewInt(1))
	}
	return nil
}

func (c *Chain) TransactionReceipt(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.receipts[txHash]
	if !ok {
		return nil, ethereum.NotFound
	}
	if c.polls[txHash] < c.PendingPolls {
		c.polls[txHash]++
		return nil, ethereum.NotFound
	}
	return r, nil
}

var _ domain.ChainClient = (*Chain)(nil)
