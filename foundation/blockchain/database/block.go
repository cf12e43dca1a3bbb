package database

import (
	"strconv"
	"strings"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/signature"
)

// UnminedHash is the hash a block carries until it has been mined. It can
// never be the output of CalculateHash.
const UnminedHash = "1"

// =============================================================================

// BlockHeader represents the linkage information required for each block.
type BlockHeader struct {
	PrevBlockHash string `json:"prev_block_hash"` // Hash of the previous block in the chain.
	TimeStamp     int64  `json:"timestamp"`       // Time the block was constructed in milliseconds.
	Nonce         uint64 `json:"nonce"`           // Value identified to solve the hash solution.
}

// Block represents a single transaction bound into the chain.
type Block struct {
	Header BlockHeader `json:"header"`
	Tx     Tx          `json:"tx"`
	Hash   string      `json:"hash"`
}

// NewBlock constructs a block for the specified transaction. The block is
// not linked or mined, the chain takes care of that on append.
func NewBlock(prevBlockHash string, tx Tx) Block {
	return Block{
		Header: BlockHeader{
			PrevBlockHash: prevBlockHash,
			TimeStamp:     time.Now().UnixMilli(),
		},
		Tx:   tx,
		Hash: UnminedHash,
	}
}

// CalculateHash returns the hash for the block's current field values. The
// stored Hash field is not part of the input.
//
// The input is the concatenation, with no separators, of the nonce, previous
// block hash, block timestamp, transaction timestamp, amount, sender and
// recipient in that order. Any change to the order or formatting produces a
// chain that is incompatible with existing ones.
func (b Block) CalculateHash() string {
	return hashWithNonce(b.Header.Nonce, b.hashSuffix())
}

// hashSuffix returns every hash input that follows the nonce. Mining only
// changes the nonce so this is computed once per search.
func (b Block) hashSuffix() string {
	var sb strings.Builder
	sb.WriteString(b.Header.PrevBlockHash)
	sb.WriteString(strconv.FormatInt(b.Header.TimeStamp, 10))
	sb.WriteString(strconv.FormatInt(b.Tx.TimeStamp(), 10))
	sb.WriteString(signature.FormatAmount(b.Tx.Amount()))
	sb.WriteString(b.Tx.From())
	sb.WriteString(b.Tx.To())

	return sb.String()
}

func hashWithNonce(nonce uint64, suffix string) string {
	return signature.Hash(strconv.FormatUint(nonce, 10) + suffix)
}

// IsHashSolved checks the hash to make sure it complies with the POW rules.
// We need to match a difficulty number of leading 0's.
func IsHashSolved(difficulty uint, hash string) bool {
	if uint(len(hash)) < difficulty {
		return false
	}

	for i := range difficulty {
		if hash[i] != '0' {
			return false
		}
	}

	return true
}
