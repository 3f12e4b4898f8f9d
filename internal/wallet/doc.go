// Package wallet provides the domain.WalletProvider implementations used by
// chainvote.
//
// A wallet provider holds the voter's account. It lists accounts already
// granted to the client, asks the user to grant access, and signs messages and
// transactions. Two providers are available:
//
//   - Local keeps a secp256k1 key encrypted on disk (see internal/store).
//     Access is granted by decrypting the key with a passphrase obtained
//     from an Authorizer callback.
//   - RPC talks to an external wallet (a node with managed accounts, or a
//     signer such as Clef) over JSON-RPC using eth_accounts,
//     eth_requestAccounts, personal_sign and eth_signTransaction.
//
// NewSigner narrows a provider to one granted account.
package wallet
