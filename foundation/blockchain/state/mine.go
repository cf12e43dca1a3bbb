package state

import (
	"context"
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// Append links the block to the current tail of the chain, mines it at the
// chain's difficulty and adds it to the chain. Whatever linkage the block
// carried is replaced. The stored block is returned.
//
// Appends are processed one at a time. If the context is cancelled while
// mining, the chain is left unchanged and the context error is returned.
func (s *State) Append(ctx context.Context, block database.Block) (database.Block, error) {
	s.appendMu.Lock()
	defer s.appendMu.Unlock()

	s.evHandler("state: Append: started: tx[%s]", block.Tx)
	defer s.evHandler("state: Append: completed")

	// Only appends change the tail and we hold the append lock.
	latest := s.Latest()

	s.evHandler("state: Append: link to blk[%d]: hash[%s]", s.Length()-1, latest.Hash)
	block.Header.PrevBlockHash = latest.Hash

	s.evHandler("state: Append: MINING: perform POW")

	if _, err := block.PerformPOW(ctx, s.genesis.Difficulty, s.workers, s.evHandler); err != nil {
		return database.Block{}, fmt.Errorf("mining block: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.blocks = append(s.blocks, block)

	s.evHandler("state: Append: block added: blk[%d]: hash[%s]", len(s.blocks)-1, block.Hash)

	return block, nil
}

// AppendTx constructs a new block for the transaction and appends it.
func (s *State) AppendTx(ctx context.Context, tx database.Tx) (database.Block, error) {
	return s.Append(ctx, database.NewBlock("", tx))
}
