package types

import "github.com/ethereum/go-ethereum/common"

// WalletKey is the secp256k1 key material held by the local wallet.
type WalletKey struct {
	Address common.Address `json:"address"`
	Private []byte         `json:"private"`
}

// Connection describes a bound voting session.
type Connection struct {
	Account  common.Address
	Contract common.Address
	Tally    Tally
}
