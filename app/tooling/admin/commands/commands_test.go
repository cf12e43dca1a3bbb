package commands_test

import (
	"context"
	"testing"

	"github.com/ardanlabs/ledger/app/tooling/admin/commands"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_DemoChain(t *testing.T) {
	t.Log("Given the need to demonstrate tamper detection.")
	{
		t.Logf("\tTest 0:\tWhen mining the demo chain at difficulty 2.")
		{
			st, err := commands.BuildDemoChain(context.Background(), 2, 1, nil)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to build the chain: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to build the chain.", success)

			if st.Length() != len(commands.DemoTxs)+1 {
				t.Fatalf("\t%s\tTest 0:\tShould have %d blocks, got %d.", failed, len(commands.DemoTxs)+1, st.Length())
			}
			t.Logf("\t%s\tTest 0:\tShould have %d blocks.", success, len(commands.DemoTxs)+1)

			if err := st.Validate(); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be valid: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be valid.", success)

			if err := state.NewTamper(st).SetHash(3, commands.ForgedHash); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to forge blk[3]: %v", failed, err)
			}

			ve := state.GetValidationError(st.Validate())
			if ve == nil || ve.Index != 3 || ve.Check != state.CheckIntegrity {
				t.Fatalf("\t%s\tTest 0:\tShould detect the forged hash at blk[3]: %+v", failed, ve)
			}
			t.Logf("\t%s\tTest 0:\tShould detect the forged hash at blk[3].", success)
		}
	}
}

func Test_Bench(t *testing.T) {
	t.Log("Given the need to measure the cost of mining.")
	{
		t.Logf("\tTest 0:\tWhen mining at difficulty 0.")
		{
			res, err := commands.Bench(context.Background(), 0, 3, 1)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to bench: %v", failed, err)
			}

			if res.MeanAttempts != 1 || res.StdDevAttempts != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould take exactly one attempt per block: %+v", failed, res)
			}
			t.Logf("\t%s\tTest 0:\tShould take exactly one attempt per block.", success)
		}

		t.Logf("\tTest 1:\tWhen mining a single block at difficulty 2.")
		{
			res, err := commands.Bench(context.Background(), 2, 1, 2)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to bench: %v", failed, err)
			}

			if res.Runs != 1 || res.MeanAttempts < 1 || res.StdDevAttempts != 0 {
				t.Fatalf("\t%s\tTest 1:\tShould report a zero deviation for one run: %+v", failed, res)
			}
			t.Logf("\t%s\tTest 1:\tShould report a zero deviation for one run.", success)
		}
	}
}
