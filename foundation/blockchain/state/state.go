// Package state is the core API for the blockchain and implements all the
// rules for linking, mining and auditing blocks.
package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/blockchain/signature"
)

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of mining and validating blocks.
type EventHandler func(v string, args ...any)

// Config represents the configuration required to start the blockchain.
type Config struct {
	Genesis   genesis.Genesis
	Workers   int
	EvHandler EventHandler
}

// State manages a single in memory chain of blocks.
type State struct {
	genesis   genesis.Genesis
	workers   int
	evHandler EventHandler

	// appendMu serializes appends so the tail read, the mining and the
	// write happen as one step. It is held while mining, mu is not.
	appendMu sync.Mutex

	mu     sync.RWMutex
	blocks []database.Block
}

// New constructs a new blockchain and mines the genesis block. The chain
// is never returned without its genesis block.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	// Nothing can be mined or validated without the hash primitive.
	if err := signature.Available(); err != nil {
		return nil, err
	}

	state := State{
		genesis:   cfg.Genesis,
		workers:   max(cfg.Workers, 1),
		evHandler: ev,
	}

	ev("state: New: MINING: genesis block: difficulty[%d]", cfg.Genesis.Difficulty)

	// The genesis block links to the zero hash and carries the system
	// issuance transaction.
	block := database.NewBlock(signature.ZeroHash, cfg.Genesis.Tx())
	if _, err := block.PerformPOW(context.Background(), state.genesis.Difficulty, state.workers, ev); err != nil {
		return nil, fmt.Errorf("mining genesis block: %w", err)
	}

	state.blocks = []database.Block{block}

	ev("state: New: genesis block added: blk[%s]", block.Hash)

	return &state, nil
}
