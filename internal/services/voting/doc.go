// Package voting runs the connect, read and vote workflow.
//
// Connect discovers the wallet's accounts, asks for authorisation when none
// are granted yet, binds the ballot contract with the first account as signer
// and reads the current tallies. Cast signs the vote payload, submits
// vote(choice, keccak256(signature)), waits for the transaction to be mined
// and re-reads the tallies.
//
// Failures are logged where they happen and returned to the caller. Nothing
// is retried.
package voting
