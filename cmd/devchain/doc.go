// Package main runs an in-memory Ethereum JSON-RPC node hosting the ballot
// contract, for local development and demos of chainvote.
//
// JSON-RPC API (POST /)
//
//	eth_chainId, net_version, eth_blockNumber
//	eth_getCode              Non-empty only at the ballot address.
//	eth_call                 Answers yesVotes() and noVotes().
//	eth_estimateGas, eth_gasPrice, eth_getTransactionCount
//	eth_sendRawTransaction   Executes vote(bool,bytes32) and mines it at once.
//	eth_getTransactionReceipt
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - Signed transactions must carry the node's chain ID (default 1337) and
//     the sender's next nonce.
//   - An access log records method, path, remote, status and duration for
//     each request.
//   - The default listen address is 127.0.0.1:8545, the default --rpc of
//     chainvote.
package main
