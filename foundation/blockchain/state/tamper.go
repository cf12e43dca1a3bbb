package state

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// Tamper provides direct write access to the blocks held by a chain. It
// exists so tests and demonstrations can corrupt a chain and watch Validate
// catch it. It must never be used by production code.
type Tamper struct {
	state *State
}

// NewTamper constructs a Tamper for the specified chain.
func NewTamper(s *State) *Tamper {
	return &Tamper{state: s}
}

// SetHash overwrites the stored hash of the block at index.
func (t *Tamper) SetHash(index int, hash string) error {
	return t.update(index, func(b *database.Block) { b.Hash = hash })
}

// SetPrevHash overwrites the previous hash of the block at index.
func (t *Tamper) SetPrevHash(index int, hash string) error {
	return t.update(index, func(b *database.Block) { b.Header.PrevBlockHash = hash })
}

// ReplaceTx swaps the transaction of the block at index without mining it.
// When rehash is true the stored hash is recomputed from the new values.
func (t *Tamper) ReplaceTx(index int, tx database.Tx, rehash bool) error {
	return t.update(index, func(b *database.Block) {
		b.Tx = tx
		if rehash {
			b.Hash = b.CalculateHash()
		}
	})
}

func (t *Tamper) update(index int, fn func(b *database.Block)) error {
	t.state.mu.Lock()
	defer t.state.mu.Unlock()

	if index < 0 || index >= len(t.state.blocks) {
		return ErrBlockNotFound
	}

	fn(&t.state.blocks[index])
	t.state.evHandler("state: Tamper: blk[%d] altered", index)

	return nil
}
