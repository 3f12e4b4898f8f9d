package interfaces

import domaintypes "chainvote/internal/domain/types"

// KeyStore persists the local wallet key, encrypted with a passphrase.
type KeyStore interface {
	SaveWalletKey(passphrase string, key domaintypes.WalletKey) error
	LoadWalletKey(passphrase string) (domaintypes.WalletKey, error)
	HasWalletKey() (bool, error)
}

// ReceiptStore keeps the journal of votes cast from this machine.
type ReceiptStore interface {
	AppendReceipt(receipt domaintypes.Receipt) error
	ListReceipts() ([]domaintypes.Receipt, error)
}
