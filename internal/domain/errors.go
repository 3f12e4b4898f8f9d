package domain

import "errors"

var (
	// ErrWalletUnavailable is returned when no wallet is configured or the
	// local key file does not exist.
	ErrWalletUnavailable = errors.New("wallet not available")
	// ErrAuthorizationRejected is returned when the user declines access or
	// the wallet grants no accounts.
	ErrAuthorizationRejected = errors.New("account authorization rejected")
	// ErrNotConnected is returned when a vote is attempted before the
	// contract and signer are bound.
	ErrNotConnected = errors.New("contract or signer not initialised")
	// ErrTransactionFailed is returned when a vote transaction is mined with
	// a failure status.
	ErrTransactionFailed = errors.New("vote transaction failed")
	// ErrNoContract is returned when the bound address holds no code.
	ErrNoContract = errors.New("no contract code at address")
	// ErrWrongPassphrase is returned when the passphrase is incorrect or the
	// key file has been modified.
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted wallet")
	// ErrWalletExists is returned when creating a wallet over an existing one
	// without asking to replace it.
	ErrWalletExists = errors.New("wallet already exists")
)
