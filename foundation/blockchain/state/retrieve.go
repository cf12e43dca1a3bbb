package state

import (
	"errors"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
)

// ErrBlockNotFound is returned when a block index is outside the chain.
var ErrBlockNotFound = errors.New("block not found")

// =============================================================================

// RetrieveGenesis returns a copy of the genesis information.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// Difficulty returns the number of leading zeros required of every hash.
func (s *State) Difficulty() uint {
	return s.genesis.Difficulty
}

// Blocks returns a copy of the chain in order, genesis first. Changes made
// to the returned blocks have no effect on the chain.
func (s *State) Blocks() []database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blocks := make([]database.Block, len(s.blocks))
	copy(blocks, s.blocks)

	return blocks
}

// Latest returns a copy of the current tail of the chain.
func (s *State) Latest() database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.blocks[len(s.blocks)-1]
}

// Length returns the number of blocks including genesis.
func (s *State) Length() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.blocks)
}

// QueryBlock returns a copy of the block at the specified index.
func (s *State) QueryBlock(index int) (database.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index < 0 || index >= len(s.blocks) {
		return database.Block{}, ErrBlockNotFound
	}

	return s.blocks[index], nil
}
