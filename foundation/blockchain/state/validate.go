package state

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// Check identifies which of the block checks failed during validation.
type Check string

// Set of checks performed against every block after genesis, in the order
// they are performed.
const (
	CheckIntegrity Check = "integrity" // Stored hash matches the recomputed hash.
	CheckLinkage   Check = "linkage"   // Previous hash matches the parent's hash.
	CheckWork      Check = "work"      // Hash carries the difficulty's leading zeros.
)

// ValidationError is returned by Validate when tampering is detected. It is
// an expected outcome of an audit and not a failure of the chain itself.
type ValidationError struct {
	Index int
	Check Check
	Got   string
	Exp   string
}

// Error implements the error interface.
func (ve *ValidationError) Error() string {
	switch ve.Check {
	case CheckIntegrity:
		return fmt.Sprintf("blk[%d]: hash has been altered, got %s, exp %s", ve.Index, ve.Got, ve.Exp)
	case CheckLinkage:
		return fmt.Sprintf("blk[%d]: previous hash link is broken, got %s, exp %s", ve.Index, ve.Got, ve.Exp)
	default:
		return fmt.Sprintf("blk[%d]: block was not mined correctly, hash %s, prefix %q", ve.Index, ve.Got, ve.Exp)
	}
}

// IsValidationError checks if an error of type ValidationError exists.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// GetValidationError returns a copy of the ValidationError pointer.
func GetValidationError(err error) *ValidationError {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return nil
	}
	return ve
}

// =============================================================================

// Validate audits every block after genesis against its parent and returns
// a ValidationError describing the first problem found. The genesis block
// is only protected through the link the next block holds to it.
func (s *State) Validate() error {
	blocks := s.Blocks()
	difficulty := s.genesis.Difficulty

	s.evHandler("state: Validate: started: blocks[%d] difficulty[%d]", len(blocks), difficulty)

	for i := 1; i < len(blocks); i++ {
		if err := validateBlock(i, blocks[i], blocks[i-1], difficulty); err != nil {
			s.evHandler("state: Validate: INVALID: %s", err)
			return err
		}
	}

	s.evHandler("state: Validate: completed: chain is valid")

	return nil
}

// IsValid returns true when no tampering is detected.
func (s *State) IsValid() bool {
	return s.Validate() == nil
}

// validateBlock performs the integrity, linkage and work checks in order.
func validateBlock(index int, current database.Block, previous database.Block, difficulty uint) error {
	if hash := current.CalculateHash(); current.Hash != hash {
		return &ValidationError{Index: index, Check: CheckIntegrity, Got: current.Hash, Exp: hash}
	}

	if current.Header.PrevBlockHash != previous.Hash {
		return &ValidationError{Index: index, Check: CheckLinkage, Got: current.Header.PrevBlockHash, Exp: previous.Hash}
	}

	if !database.IsHashSolved(difficulty, current.Hash) {
		return &ValidationError{Index: index, Check: CheckWork, Got: current.Hash, Exp: strings.Repeat("0", int(difficulty))}
	}

	return nil
}
