package database

// MakeTx constructs a transaction with fixed values so hashes can be
// compared against known digests.
func MakeTx(id string, amount float64, from string, to string, timeStamp int64) Tx {
	return Tx{
		id:        id,
		amount:    amount,
		from:      from,
		to:        to,
		timeStamp: timeStamp,
	}
}
