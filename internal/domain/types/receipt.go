package types

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Receipt is the local record of a vote that was mined successfully.
type Receipt struct {
	ID            string         `json:"id"`
	Choice        Choice         `json:"choice"`
	Account       common.Address `json:"account"`
	Contract      common.Address `json:"contract"`
	TxHash        common.Hash    `json:"tx_hash"`
	Signature     hexutil.Bytes  `json:"signature"`
	SignatureHash common.Hash    `json:"signature_hash"`
	BlockNumber   uint64         `json:"block_number"`
	GasUsed       uint64         `json:"gas_used"`
	After         Tally          `json:"tally_after"`
	At            time.Time      `json:"at"`
}
