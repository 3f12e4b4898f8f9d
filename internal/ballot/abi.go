package ballot

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const (
	methodVote     = "vote"
	methodYesVotes = "yesVotes"
	methodNoVotes  = "noVotes"
)

// ABIJSON is the interface descriptor of the voting contract.
const ABIJSON = `[
  {
    "type": "function",
    "name": "vote",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "_vote", "type": "bool"},
      {"name": "_signatureHash", "type": "bytes32"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "yesVotes",
    "stateMutability": "view",
    "inputs": [],
    "outputs": [{"name": "", "type": "uint256"}]
  },
  {
    "type": "function",
    "name": "noVotes",
    "stateMutability": "view",
    "inputs": [],
    "outputs": [{"name": "", "type": "uint256"}]
  }
]`

var parsedABI = mustParseABI()

func mustParseABI() abi.ABI {
	a, err := abi.JSON(strings.NewReader(ABIJSON))
	if err != nil {
		panic("ballot: invalid ABI: " + err.Error())
	}
	return a
}

// ABI returns the parsed contract interface.
func ABI() abi.ABI { return parsedABI }
