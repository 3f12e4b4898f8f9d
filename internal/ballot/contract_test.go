package ballot_test

import (
	"context"
	"errors"
	"math/big"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"chainvote/internal/ballot"
	"chainvote/internal/crypto"
	"chainvote/internal/devchain"
	"chainvote/internal/domain"
	"chainvote/internal/testutil"
)

var contractAddr = common.HexToAddress("0xFc894967E9c09c6DBDBc002F7d6Fb9F657710cAF")

func bind(t *testing.T, chain *devchain.Chain, opts ballot.Options) *ballot.Contract {
	t.Helper()
	if opts.PollInterval == 0 {
		opts.PollInterval = time.Millisecond
	}
	c, err := ballot.Bind(contractAddr, chain, opts)
	require.NoError(t, err)
	return c
}

func TestBind_RequiresAddress(t *testing.T) {
	_, err := ballot.Bind(common.Address{}, devchain.New(contractAddr), ballot.Options{})
	assert.Error(t, err)
}

func TestABI_Selectors(t *testing.T) {
	a := ballot.ABI()
	assert.Len(t, a.Methods, 3)
	assert.Equal(t, "vote(bool,bytes32)", a.Methods["vote"].Sig)
	assert.Equal(t, "yesVotes()", a.Methods["yesVotes"].Sig)
	assert.Equal(t, "noVotes()", a.Methods["noVotes"].Sig)
	assert.True(t, a.Methods["yesVotes"].IsConstant())
	assert.False(t, a.Methods["vote"].IsConstant())
}

func TestTally_ReadsBothCounters(t *testing.T) {
	chain := devchain.New(contractAddr)
	chain.SetTally(12, 5)
	c := bind(t, chain, ballot.Options{})

	tally, err := c.Tally(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), tally.Yes.Int64())
	assert.Equal(t, int64(5), tally.No.Int64())
	assert.Equal(t, int64(17), tally.Total().Int64())
	assert.Equal(t, 2, chain.Calls())
}

func TestTally_NoContractCode(t *testing.T) {
	chain := devchain.New(common.HexToAddress("0xdead"))
	c := bind(t, chain, ballot.Options{})

	_, err := c.YesVotes(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoContract)
	assert.ErrorIs(t, c.VerifyCode(context.Background()), domain.ErrNoContract)
}

func TestTally_CallError(t *testing.T) {
	chain := devchain.New(contractAddr)
	chain.CallErr = errors.New("connection refused")
	c := bind(t, chain, ballot.Options{})

	_, err := c.Tally(context.Background())
	assert.ErrorContains(t, err, "connection refused")
}

func TestVote_SendsSignedTransaction(t *testing.T) {
	ctx := context.Background()
	chain := devchain.New(contractAddr)
	c := bind(t, chain, ballot.Options{})
	require.NoError(t, c.VerifyCode(ctx))
	signer := testutil.NewSigner(t)

	sigHash := crypto.SignatureHash([]byte("signature"))
	txHash, err := c.Vote(ctx, signer, domain.ChoiceYes, sigHash)
	require.NoError(t, err)

	sent := chain.Sent()
	require.Len(t, sent, 1)
	tx := sent[0]
	assert.Equal(t, txHash, tx.Hash())
	assert.Equal(t, contractAddr, *tx.To())
	assert.Equal(t, uint64(48_000), tx.Gas())
	assert.Equal(t, uint64(0), tx.Nonce())

	from, err := ethtypes.Sender(ethtypes.LatestSignerForChainID(chain.ID), tx)
	require.NoError(t, err)
	assert.Equal(t, signer.Address(), from)

	method := ballot.ABI().Methods["vote"]
	args, err := method.Inputs.Unpack(tx.Data()[4:])
	require.NoError(t, err)
	assert.Equal(t, true, args[0])
	assert.Equal(t, [32]byte(sigHash), args[1])

	receipt, err := c.WaitMined(ctx, txHash)
	require.NoError(t, err)
	assert.Equal(t, ethtypes.ReceiptStatusSuccessful, receipt.Status)

	tally, err := c.Tally(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), tally.Yes.Int64())
	assert.Equal(t, int64(0), tally.No.Int64())
}

func TestVote_UsesConfiguredGasAndChain(t *testing.T) {
	ctx := context.Background()
	chain := devchain.New(contractAddr)
	c := bind(t, chain, ballot.Options{GasLimit: 90_000, ChainID: big.NewInt(1337)})

	_, err := c.Vote(ctx, testutil.NewSigner(t), domain.ChoiceNo, common.Hash{})
	require.NoError(t, err)
	require.Len(t, chain.Sent(), 1)
	assert.Equal(t, uint64(90_000), chain.Sent()[0].Gas())
}

func TestVote_InvalidChoice(t *testing.T) {
	chain := devchain.New(contractAddr)
	c := bind(t, chain, ballot.Options{})
	_, err := c.Vote(context.Background(), testutil.NewSigner(t), domain.Choice("abstain"), common.Hash{})
	assert.Error(t, err)
	assert.Empty(t, chain.Sent())
}

func TestWaitMined_PollsUntilReceipt(t *testing.T) {
	ctx := context.Background()
	chain := devchain.New(contractAddr)
	chain.PendingPolls = 3
	c := bind(t, chain, ballot.Options{})

	txHash, err := c.Vote(ctx, testutil.NewSigner(t), domain.ChoiceNo, common.Hash{})
	require.NoError(t, err)

	receipt, err := c.WaitMined(ctx, txHash)
	require.NoError(t, err)
	assert.Equal(t, txHash, receipt.TxHash)
}

func TestWaitMined_Reverted(t *testing.T) {
	ctx := context.Background()
	chain := devchain.New(contractAddr)
	chain.Revert = true
	c := bind(t, chain, ballot.Options{})

	txHash, err := c.Vote(ctx, testutil.NewSigner(t), domain.ChoiceYes, common.Hash{})
	require.NoError(t, err)

	_, err = c.WaitMined(ctx, txHash)
	assert.ErrorIs(t, err, domain.ErrTransactionFailed)
}

func TestWaitMined_ContextCancelled(t *testing.T) {
	chain := devchain.New(contractAddr)
	c := bind(t, chain, ballot.Options{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := c.WaitMined(ctx, common.HexToHash("0x1234"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// countingChain counts eth_chainId requests.
type countingChain struct {
	*devchain.Chain
	chainIDCalls atomic.Int32
}

func (c *countingChain) ChainID(ctx context.Context) (*big.Int, error) {
	c.chainIDCalls.Add(1)
	return c.Chain.ChainID(ctx)
}

func TestVote_ConcurrentVotesAskChainIDOnce(t *testing.T) {
	chain := &countingChain{Chain: devchain.New(contractAddr)}
	c, err := ballot.Bind(contractAddr, chain, ballot.Options{PollInterval: time.Millisecond})
	require.NoError(t, err)

	signers := make([]domain.Signer, 4)
	for i := range signers {
		signers[i] = testutil.NewSigner(t)
	}

	ctx := context.Background()
	var g errgroup.Group
	for i, s := range signers {
		s := s
		choice := domain.ChoiceFromBool(i%2 == 0)
		g.Go(func() error {
			_, err := c.Vote(ctx, s, choice, common.Hash{})
			return err
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(1), chain.chainIDCalls.Load())
	assert.Len(t, chain.Sent(), len(signers))
}
