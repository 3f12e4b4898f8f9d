// Package devchain is an in-memory Ethereum node hosting the ballot contract.
//
// Chain implements domain.ChainClient directly, so tests can use it in
// process. NewServer exposes the same state over JSON-RPC with the handful of
// eth_ methods an ethclient needs to read the counters and submit votes, which
// lets the CLI run end to end without a real network.
//
// Vote transactions are executed and mined when they are received. Nothing is
// persisted.
package devchain
