package database_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/google/uuid"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// =============================================================================

func fixedBlock() database.Block {
	tx := database.MakeTx("a8098c1a-f86e-11da-bd1a-00112444be1e", 200, "A", "B", 1699999999999)

	return database.Block{
		Header: database.BlockHeader{
			PrevBlockHash: "prev",
			TimeStamp:     1700000000000,
			Nonce:         7,
		},
		Tx:   tx,
		Hash: database.UnminedHash,
	}
}

func Test_CalculateHash(t *testing.T) {
	const hash = "d3d0a6e705b420bcf12f9c50b7995ca3f82b31840e9c77338145e408c76a8880"

	t.Log("Given the need to hash a block.")
	{
		t.Logf("\tTest 0:\tWhen handling a block with fixed values.")
		{
			b := fixedBlock()

			h := b.CalculateHash()
			if h != hash {
				t.Logf("\t%s\tTest 0:\tgot: %s", failed, h)
				t.Logf("\t%s\tTest 0:\texp: %s", failed, hash)
				t.Fatalf("\t%s\tTest 0:\tShould get back the known digest.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould get back the known digest.", success)

			if b.CalculateHash() != h {
				t.Fatalf("\t%s\tTest 0:\tShould get back the same hash twice.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould get back the same hash twice.", success)

			b.Hash = "anything"
			if b.CalculateHash() != h {
				t.Fatalf("\t%s\tTest 0:\tShould ignore the stored hash.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould ignore the stored hash.", success)
		}

		t.Logf("\tTest 1:\tWhen changing any hashed field.")
		{
			base := fixedBlock().CalculateHash()

			mutations := map[string]func(b *database.Block){
				"nonce":  func(b *database.Block) { b.Header.Nonce++ },
				"prev":   func(b *database.Block) { b.Header.PrevBlockHash = "other" },
				"time":   func(b *database.Block) { b.Header.TimeStamp++ },
				"amount": func(b *database.Block) { b.Tx = database.MakeTx(b.Tx.ID(), 201, "A", "B", 1699999999999) },
				"from":   func(b *database.Block) { b.Tx = database.MakeTx(b.Tx.ID(), 200, "C", "B", 1699999999999) },
				"to":     func(b *database.Block) { b.Tx = database.MakeTx(b.Tx.ID(), 200, "A", "C", 1699999999999) },
				"txtime": func(b *database.Block) { b.Tx = database.MakeTx(b.Tx.ID(), 200, "A", "B", 1) },
			}

			for name, mutate := range mutations {
				b := fixedBlock()
				mutate(&b)
				if b.CalculateHash() == base {
					t.Fatalf("\t%s\tTest 1:\tShould get a different hash after changing %s.", failed, name)
				}
				t.Logf("\t%s\tTest 1:\tShould get a different hash after changing %s.", success, name)
			}

			b := fixedBlock()
			b.Tx = database.MakeTx("another-id", 200, "A", "B", 1699999999999)
			if b.CalculateHash() != base {
				t.Fatalf("\t%s\tTest 1:\tShould not include the transaction id in the hash.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould not include the transaction id in the hash.", success)
		}
	}
}

func Test_NewTx(t *testing.T) {
	t.Log("Given the need to construct transactions.")
	{
		t.Logf("\tTest 0:\tWhen constructing two transactions.")
		{
			tx1 := database.NewTx(200, "A", "B")
			tx2 := database.NewTx(200, "A", "B")

			if _, err := uuid.Parse(tx1.ID()); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould get a uuid as the id: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould get a uuid as the id.", success)

			if tx1.ID() == tx2.ID() {
				t.Fatalf("\t%s\tTest 0:\tShould get unique ids.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould get unique ids.", success)

			if tx1.TimeStamp() == 0 || tx1.Amount() != 200 || tx1.From() != "A" || tx1.To() != "B" {
				t.Fatalf("\t%s\tTest 0:\tShould get back the constructed values: %s", failed, tx1)
			}
			t.Logf("\t%s\tTest 0:\tShould get back the constructed values.", success)
		}

		t.Logf("\tTest 1:\tWhen constructing a block.")
		{
			b := database.NewBlock("", database.NewTx(1, "B", "A"))
			if b.Hash != database.UnminedHash {
				t.Fatalf("\t%s\tTest 1:\tShould carry the unmined hash.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould carry the unmined hash.", success)

			if b.Hash == b.CalculateHash() {
				t.Fatalf("\t%s\tTest 1:\tShould not match its calculated hash before mining.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould not match its calculated hash before mining.", success)
		}
	}
}

func Test_IsHashSolved(t *testing.T) {
	type table struct {
		name       string
		difficulty uint
		hash       string
		exp        bool
	}

	tt := []table{
		{name: "zero", difficulty: 0, hash: "abc", exp: true},
		{name: "zeroempty", difficulty: 0, hash: "", exp: true},
		{name: "one", difficulty: 1, hash: "0abc", exp: true},
		{name: "onefail", difficulty: 1, hash: "a0bc", exp: false},
		{name: "six", difficulty: 6, hash: "000000" + strings.Repeat("f", 58), exp: true},
		{name: "sixfail", difficulty: 6, hash: "00000f" + strings.Repeat("0", 58), exp: false},
		{name: "short", difficulty: 4, hash: "00", exp: false},
		{name: "unmined", difficulty: 1, hash: database.UnminedHash, exp: false},
	}

	t.Log("Given the need to check proof of work.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling %s.", testID, tst.name)
			{
				f := func(t *testing.T) {
					if got := database.IsHashSolved(tst.difficulty, tst.hash); got != tst.exp {
						t.Fatalf("\t%s\tTest %d:\tShould get %v, got %v.", failed, testID, tst.exp, got)
					}
					t.Logf("\t%s\tTest %d:\tShould get %v.", success, testID, tst.exp)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func Test_PerformPOW(t *testing.T) {
	type table struct {
		name       string
		difficulty uint
		workers    int
	}

	tt := []table{
		{name: "d0", difficulty: 0, workers: 1},
		{name: "d1", difficulty: 1, workers: 1},
		{name: "d2", difficulty: 2, workers: 1},
		{name: "d3", difficulty: 3, workers: 1},
		{name: "d4", difficulty: 4, workers: 1},
		{name: "d5", difficulty: 5, workers: 1},
		{name: "d0parallel", difficulty: 0, workers: 4},
		{name: "d2parallel", difficulty: 2, workers: 4},
		{name: "d4parallel", difficulty: 4, workers: 4},
		{name: "d6parallel", difficulty: 6, workers: 8},
	}

	t.Log("Given the need to mine blocks.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen mining at difficulty %d with %d workers.", testID, tst.difficulty, tst.workers)
			{
				f := func(t *testing.T) {
					b := database.NewBlock("prev", database.NewTx(9700, "C", "D"))

					work, err := b.PerformPOW(context.Background(), tst.difficulty, tst.workers, nil)
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to mine the block: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to mine the block.", success, testID)

					if b.Hash != b.CalculateHash() || b.Hash != work.Hash || b.Header.Nonce != work.Nonce {
						t.Fatalf("\t%s\tTest %d:\tShould store a hash matching the block.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould store a hash matching the block.", success, testID)

					if !database.IsHashSolved(tst.difficulty, b.Hash) {
						t.Fatalf("\t%s\tTest %d:\tShould have %d leading zeros: %s", failed, testID, tst.difficulty, b.Hash)
					}
					t.Logf("\t%s\tTest %d:\tShould have %d leading zeros.", success, testID, tst.difficulty)

					if work.Attempts == 0 || b.Header.Nonce == 0 {
						t.Fatalf("\t%s\tTest %d:\tShould have computed at least one hash.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould have computed at least one hash.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func Test_PerformPOWCancel(t *testing.T) {
	t.Log("Given the need to stop mining on request.")
	{
		for testID, workers := range []int{1, 4} {
			t.Logf("\tTest %d:\tWhen the context is cancelled with %d workers.", testID, workers)
			{
				b := database.NewBlock("prev", database.NewTx(1, "B", "A"))
				orig := b

				ctx, cancel := context.WithCancel(context.Background())
				cancel()

				// A full length prefix of zeros is never going to be found.
				_, err := b.PerformPOW(ctx, 64, workers, nil)
				if !errors.Is(err, context.Canceled) {
					t.Fatalf("\t%s\tTest %d:\tShould get back a cancelled error: %v", failed, testID, err)
				}
				t.Logf("\t%s\tTest %d:\tShould get back a cancelled error.", success, testID)

				if b.Hash != orig.Hash || b.Header.Nonce != orig.Header.Nonce {
					t.Fatalf("\t%s\tTest %d:\tShould leave the block untouched.", failed, testID)
				}
				t.Logf("\t%s\tTest %d:\tShould leave the block untouched.", success, testID)
			}
		}
	}
}
