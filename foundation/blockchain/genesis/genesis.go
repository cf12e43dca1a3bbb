// Package genesis maintains access to the genesis configuration.
package genesis

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// Default labels for the system issuance transaction of the genesis block.
const (
	DefaultSender    = "System"
	DefaultRecipient = "Genesis"
)

// Genesis represents the genesis configuration for a chain.
type Genesis struct {
	Date       time.Time `json:"date"`
	Difficulty uint      `json:"difficulty"` // How difficult it needs to be to solve the work problem.
	Sender     string    `json:"sender"`     // Sender label of the genesis transaction.
	Recipient  string    `json:"recipient"`  // Recipient label of the genesis transaction.
	Amount     float64   `json:"amount"`     // Amount issued by the genesis transaction.
}

// =============================================================================

// Default returns the genesis configuration used when no file is provided.
func Default(difficulty uint) Genesis {
	return Genesis{
		Date:       time.Now().UTC(),
		Difficulty: difficulty,
		Sender:     DefaultSender,
		Recipient:  DefaultRecipient,
	}
}

// Load opens and consumes the genesis file. Labels missing from the file
// are filled in with the defaults.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, fmt.Errorf("reading genesis: %w", err)
	}

	var genesis Genesis
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, fmt.Errorf("decoding genesis: %w", err)
	}

	if genesis.Sender == "" {
		genesis.Sender = DefaultSender
	}
	if genesis.Recipient == "" {
		genesis.Recipient = DefaultRecipient
	}
	if genesis.Date.IsZero() {
		genesis.Date = time.Now().UTC()
	}

	return genesis, nil
}

// Tx constructs the system issuance transaction carried by the genesis block.
func (g Genesis) Tx() database.Tx {
	return database.NewTx(g.Amount, g.Sender, g.Recipient)
}
