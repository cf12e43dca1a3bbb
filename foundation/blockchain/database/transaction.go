package database

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// =============================================================================

// Tx is the transactional information between two parties. A Tx is the
// payload of exactly one block and can't be changed once constructed.
type Tx struct {
	id        string
	amount    float64
	from      string
	to        string
	timeStamp int64
}

// NewTx constructs a new transaction, stamping it with a unique id and the
// current time in milliseconds.
func NewTx(amount float64, from string, to string) Tx {
	return Tx{
		id:        uuid.NewString(),
		amount:    amount,
		from:      from,
		to:        to,
		timeStamp: time.Now().UnixMilli(),
	}
}

// ID returns the unique id of the transaction.
func (tx Tx) ID() string {
	return tx.id
}

// Amount returns the value being transferred.
func (tx Tx) Amount() float64 {
	return tx.amount
}

// From returns the sender.
func (tx Tx) From() string {
	return tx.from
}

// To returns the recipient.
func (tx Tx) To() string {
	return tx.to
}

// TimeStamp returns the creation time in milliseconds since the epoch.
func (tx Tx) TimeStamp() int64 {
	return tx.timeStamp
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s:%s->%s:%v", tx.id, tx.from, tx.to, tx.amount)
}

// MarshalJSON implements the json.Marshaler interface. There is no
// unmarshal counterpart, a Tx only comes into existence through NewTx.
func (tx Tx) MarshalJSON() ([]byte, error) {
	v := struct {
		ID        string  `json:"id"`
		Amount    float64 `json:"amount"`
		From      string  `json:"from"`
		To        string  `json:"to"`
		TimeStamp int64   `json:"timestamp"`
	}{
		ID:        tx.id,
		Amount:    tx.amount,
		From:      tx.from,
		To:        tx.to,
		TimeStamp: tx.timeStamp,
	}

	return json.Marshal(v)
}
