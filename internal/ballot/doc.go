// Package ballot binds the deployed yes/no voting contract.
//
// The contract exposes three functions:
//
//	function vote(bool _vote, bytes32 _signatureHash) external
//	function yesVotes() view returns (uint256)
//	function noVotes() view returns (uint256)
//
// Contract implements domain.Ballot over any domain.ChainClient (normally an
// *ethclient.Client). Reads are eth_call against the latest block. Vote builds
// a legacy transaction, has the caller's wallet sign it and broadcasts it;
// WaitMined polls for the receipt until it appears or the context ends.
package ballot
