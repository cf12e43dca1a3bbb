package commands

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/signature"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"
)

var (
	maxDifficulty uint
	runs          int
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure the attempts and time it takes to mine a block at each difficulty",
	RunE: func(cmd *cobra.Command, args []string) error {
		if runs < 1 {
			return fmt.Errorf("runs must be at least 1, got %d", runs)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		pterm.DefaultSection.Printfln("Mining %d blocks per difficulty with %d workers", runs, max(workers, 1))

		results := make([]BenchResult, 0, maxDifficulty+1)
		for d := uint(0); d <= maxDifficulty; d++ {
			spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("Difficulty %d ...", d))

			res, err := Bench(ctx, d, runs, workers)
			if err != nil {
				spinner.Fail(err.Error())
				return err
			}
			spinner.Success(fmt.Sprintf("Difficulty %d", d))

			results = append(results, res)
		}

		return printBench(results)
	},
}

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.Flags().UintVarP(&maxDifficulty, "max-difficulty", "m", 4, "Highest difficulty to measure.")
	benchCmd.Flags().IntVarP(&runs, "runs", "r", 5, "Number of blocks mined at each difficulty.")
}

// BenchResult summarizes mining a number of blocks at one difficulty.
type BenchResult struct {
	Difficulty     uint
	Runs           int
	MeanAttempts   float64
	StdDevAttempts float64
	MeanDuration   time.Duration
	StdDevDuration time.Duration
}

// Bench mines runs blocks at the specified difficulty and summarizes the
// work it took.
func Bench(ctx context.Context, difficulty uint, runs int, workers int) (BenchResult, error) {
	attempts := make([]float64, runs)
	durations := make([]float64, runs)

	for i := range runs {
		block := database.NewBlock(signature.ZeroHash, database.NewTx(float64(i), "bench", "bench"))

		work, err := block.PerformPOW(ctx, difficulty, workers, nil)
		if err != nil {
			return BenchResult{}, fmt.Errorf("difficulty[%d] run[%d]: %w", difficulty, i, err)
		}

		attempts[i] = float64(work.Attempts)
		durations[i] = float64(work.Duration)
	}

	res := BenchResult{
		Difficulty: difficulty,
		Runs:       runs,
	}

	res.MeanAttempts, res.StdDevAttempts = meanStdDev(attempts)

	mean, std := meanStdDev(durations)
	res.MeanDuration = time.Duration(mean)
	res.StdDevDuration = time.Duration(std)

	return res, nil
}

// meanStdDev reports a zero deviation for a single sample instead of NaN.
func meanStdDev(x []float64) (float64, float64) {
	mean, std := stat.MeanStdDev(x, nil)
	if math.IsNaN(std) {
		std = 0
	}
	return mean, std
}

func printBench(results []BenchResult) error {
	data := pterm.TableData{
		{"Difficulty", "Runs", "Mean Attempts", "StdDev Attempts", "Mean Duration", "StdDev Duration"},
	}

	for _, res := range results {
		data = append(data, []string{
			strconv.FormatUint(uint64(res.Difficulty), 10),
			strconv.Itoa(res.Runs),
			strconv.FormatFloat(res.MeanAttempts, 'f', 1, 64),
			strconv.FormatFloat(res.StdDevAttempts, 'f', 1, 64),
			res.MeanDuration.Round(time.Microsecond).String(),
			res.StdDevDuration.Round(time.Microsecond).String(),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
