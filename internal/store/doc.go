// Package store provides file-based persistence for chainvote's local data.
//
// It contains concrete implementations of the domain storage interfaces,
// serialising data as JSON on disk. All methods are concurrency-safe via
// internal locking. Stored files live under the user's configured home
// directory.
//
// The package stores:
//   - The local wallet key (wallet.enc), sealed with a passphrase using
//     scrypt and XChaCha20-Poly1305
//   - The journal of votes cast from this machine (receipts.json)
package store
