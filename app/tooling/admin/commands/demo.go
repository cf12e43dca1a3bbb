package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/blockchain/signature"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// ForgedHash is the value written over a block's hash by the demo.
const ForgedHash = "forged-hash-injected"

var tamperIndex int

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Mine a small chain, audit it, then tamper with it and audit again",
	RunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			pterm.EnableDebugMessages()
		}

		return demo(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().UintVarP(&difficulty, "difficulty", "d", 2, "Number of leading zeros required of every hash.")
	demoCmd.Flags().IntVarP(&tamperIndex, "tamper", "t", 3, "Index of the block whose hash is forged, -1 to skip.")
}

// DemoTxs are the transactions mined by the demo, in order.
var DemoTxs = []struct {
	Amount float64
	From   string
	To     string
}{
	{200, "A", "B"},
	{1, "B", "A"},
	{9700, "C", "D"},
}

// BuildDemoChain constructs a chain at the specified difficulty and mines
// one block for each of the demo transactions.
func BuildDemoChain(ctx context.Context, difficulty uint, workers int, ev state.EventHandler) (*state.State, error) {
	st, err := state.New(state.Config{
		Genesis:   genesis.Default(difficulty),
		Workers:   workers,
		EvHandler: ev,
	})
	if err != nil {
		return nil, err
	}

	for _, dtx := range DemoTxs {
		if _, err := st.AppendTx(ctx, database.NewTx(dtx.Amount, dtx.From, dtx.To)); err != nil {
			return nil, fmt.Errorf("mining %s->%s: %w", dtx.From, dtx.To, err)
		}
	}

	return st, nil
}

func demo(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	pterm.DefaultSection.Printfln("Mining %d blocks at difficulty %d", len(DemoTxs)+1, difficulty)

	spinner, _ := pterm.DefaultSpinner.Start("Mining ...")
	st, err := BuildDemoChain(ctx, difficulty, workers, evHandler())
	if err != nil {
		spinner.Fail(err.Error())
		return err
	}
	spinner.Success("Chain mined")

	if err := printBlocks(st.Blocks()); err != nil {
		return err
	}

	pterm.DefaultSection.Println("Auditing the chain")
	printAudit(st)

	if tamperIndex < 0 {
		return nil
	}

	pterm.DefaultSection.Printfln("Forging the hash of blk[%d]", tamperIndex)
	if err := state.NewTamper(st).SetHash(tamperIndex, ForgedHash); err != nil {
		return fmt.Errorf("tamper blk[%d]: %w", tamperIndex, err)
	}
	printAudit(st)

	return nil
}

func printBlocks(blocks []database.Block) error {
	data := pterm.TableData{
		{"Index", "Nonce", "Prev Hash", "Hash", "From", "To", "Amount"},
	}

	for i, blk := range blocks {
		data = append(data, []string{
			strconv.Itoa(i),
			strconv.FormatUint(blk.Header.Nonce, 10),
			short(blk.Header.PrevBlockHash),
			short(blk.Hash),
			blk.Tx.From(),
			blk.Tx.To(),
			signature.FormatAmount(blk.Tx.Amount()),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printAudit(st *state.State) {
	err := st.Validate()
	if err == nil {
		pterm.Success.Printfln("Chain of %d blocks is valid", st.Length())
		return
	}

	if ve := state.GetValidationError(err); ve != nil {
		pterm.Error.Printfln("Chain is invalid at blk[%d], %s check failed", ve.Index, ve.Check)
		pterm.Println(pterm.LightRed(ve.Error()))
		return
	}

	pterm.Error.Println(err)
}

func short(hash string) string {
	if len(hash) <= 16 {
		return hash
	}
	return hash[:16] + "..."
}
