package wallet_test

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainvote/internal/crypto"
	"chainvote/internal/domain"
	"chainvote/internal/wallet"
)

type rejectedError struct{}

func (rejectedError) Error() string  { return "User rejected the request." }
func (rejectedError) ErrorCode() int { return 4001 }

// fakeEth serves the eth_* wallet methods.
type fakeEth struct {
	key     *ecdsa.PrivateKey
	txKey   *ecdsa.PrivateKey // signs transactions; defaults to key
	granted bool
	reject  bool
	none    bool // eth_requestAccounts succeeds with no accounts
}

func (f *fakeEth) address() common.Address { return ethcrypto.PubkeyToAddress(f.key.PublicKey) }

func (f *fakeEth) Accounts() []common.Address {
	if !f.granted {
		return []common.Address{}
	}
	return []common.Address{f.address()}
}

func (f *fakeEth) RequestAccounts() ([]common.Address, error) {
	if f.reject {
		return nil, rejectedError{}
	}
	if f.none {
		return []common.Address{}, nil
	}
	f.granted = true
	return []common.Address{f.address()}, nil
}

type signTxArgs struct {
	From     common.Address  `json:"from"`
	To       *common.Address `json:"to"`
	Gas      hexutil.Uint64  `json:"gas"`
	GasPrice *hexutil.Big    `json:"gasPrice"`
	Value    *hexutil.Big    `json:"value"`
	Nonce    hexutil.Uint64  `json:"nonce"`
	Data     hexutil.Bytes   `json:"data"`
	ChainID  *hexutil.Big    `json:"chainId"`
}

type signTxResult struct {
	Raw hexutil.Bytes `json:"raw"`
}

func (f *fakeEth) SignTransaction(args signTxArgs) (*signTxResult, error) {
	tx := ethtypes.NewTx(&ethtypes.LegacyTx{
		Nonce:    uint64(args.Nonce),
		GasPrice: args.GasPrice.ToInt(),
		Gas:      uint64(args.Gas),
		To:       args.To,
		Value:    args.Value.ToInt(),
		Data:     args.Data,
	})
	key := f.key
	if f.txKey != nil {
		key = f.txKey
	}
	signed, err := ethtypes.SignTx(tx, ethtypes.LatestSignerForChainID(args.ChainID.ToInt()), key)
	if err != nil {
		return nil, err
	}
	raw, err := signed.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return &signTxResult{Raw: raw}, nil
}

// fakePersonal serves personal_sign.
type fakePersonal struct {
	key *ecdsa.PrivateKey
}

func (p *fakePersonal) Sign(data hexutil.Bytes, addr common.Address) (hexutil.Bytes, error) {
	return crypto.PersonalSign(p.key, data)
}

func newRPCWallet(t *testing.T, eth *fakeEth) *wallet.RPC {
	t.Helper()
	srv := rpc.NewServer()
	require.NoError(t, srv.RegisterName("eth", eth))
	require.NoError(t, srv.RegisterName("personal", &fakePersonal{key: eth.key}))
	t.Cleanup(srv.Stop)

	w := wallet.NewRPC(rpc.DialInProc(srv))
	t.Cleanup(w.Close)
	return w
}

func TestRPC_AccountsAndRequest(t *testing.T) {
	ctx := context.Background()
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	eth := &fakeEth{key: key}
	w := newRPCWallet(t, eth)

	accts, err := w.Accounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accts)

	granted, err := w.RequestAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []common.Address{eth.address()}, granted)

	accts, err = w.Accounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []common.Address{eth.address()}, accts)
}

func TestRPC_RequestRejected(t *testing.T) {
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	w := newRPCWallet(t, &fakeEth{key: key, reject: true})

	_, err = w.RequestAccounts(context.Background())
	assert.ErrorIs(t, err, domain.ErrAuthorizationRejected)
}

func TestRPC_RequestGrantsNothing(t *testing.T) {
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	w := newRPCWallet(t, &fakeEth{key: key, none: true})

	accts, err := w.RequestAccounts(context.Background())
	assert.ErrorIs(t, err, domain.ErrAuthorizationRejected)
	assert.Empty(t, accts)
}

func TestRPC_PersonalSign(t *testing.T) {
	ctx := context.Background()
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	eth := &fakeEth{key: key, granted: true}
	w := newRPCWallet(t, eth)

	msg := []byte(`{"vote":"yes"}`)
	sig, err := w.SignMessage(ctx, eth.address(), msg)
	require.NoError(t, err)

	got, err := crypto.RecoverSigner(msg, sig)
	require.NoError(t, err)
	assert.Equal(t, eth.address(), got)
}

func TestRPC_SignTransaction(t *testing.T) {
	ctx := context.Background()
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	eth := &fakeEth{key: key, granted: true}
	w := newRPCWallet(t, eth)

	to := common.HexToAddress("0xFc894967E9c09c6DBDBc002F7d6Fb9F657710cAF")
	tx := ethtypes.NewTx(&ethtypes.LegacyTx{
		Nonce: 1, GasPrice: big.NewInt(25), Gas: 50_000, To: &to, Value: new(big.Int), Data: []byte{1},
	})

	signed, err := w.SignTransaction(ctx, eth.address(), tx, big.NewInt(1337))
	require.NoError(t, err)
	assert.Equal(t, to, *signed.To())
	assert.Equal(t, uint64(50_000), signed.Gas())
}

func TestRPC_SignTransactionWrongSigner(t *testing.T) {
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	other, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	eth := &fakeEth{key: key, txKey: other, granted: true}
	w := newRPCWallet(t, eth)

	to := common.HexToAddress("0x01")
	tx := ethtypes.NewTx(&ethtypes.LegacyTx{GasPrice: big.NewInt(1), Gas: 21_000, To: &to, Value: new(big.Int)})
	_, err = w.SignTransaction(context.Background(), eth.address(), tx, big.NewInt(1))
	assert.Error(t, err)
}
