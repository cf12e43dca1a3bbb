package public

import (
	"github.com/ardanlabs/ledger/business/sys/validate"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// block is the form of a block returned to the client.
type block struct {
	Hash          string      `json:"hash"`
	PrevBlockHash string      `json:"prev_block_hash"`
	TimeStamp     int64       `json:"timestamp"`
	Nonce         uint64      `json:"nonce"`
	Tx            database.Tx `json:"tx"`
}

func toBlock(blk database.Block) block {
	return block{
		Hash:          blk.Hash,
		PrevBlockHash: blk.Header.PrevBlockHash,
		TimeStamp:     blk.Header.TimeStamp,
		Nonce:         blk.Header.Nonce,
		Tx:            blk.Tx,
	}
}

// newTx is what a client submits to have a transaction mined into a block.
type newTx struct {
	Amount *float64 `json:"amount" validate:"required"`
	From   string   `json:"from" validate:"required,max=128"`
	To     string   `json:"to" validate:"required,max=128"`
}

// Validate checks the data in the model is considered clean.
func (ntx newTx) Validate() error {
	return validate.Check(ntx)
}

// validation is the result of auditing the chain.
type validation struct {
	Valid  bool   `json:"valid"`
	Length int    `json:"length"`
	Index  int    `json:"index,omitempty"`
	Check  string `json:"check,omitempty"`
	Reason string `json:"reason,omitempty"`
}
