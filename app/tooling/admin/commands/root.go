// Package commands contains the admin tooling commands.
package commands

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	difficulty uint
	workers    int
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "admin",
	Short:         "Administrative tasks for the ledger",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", 1, "Number of goroutines used to mine a block.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print the mining and validation events.")
}

// Execute runs the command specified on the command line.
func Execute(build string) {
	rootCmd.Version = build

	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

// evHandler returns the event handler used by the commands. Events are
// only printed in verbose mode.
func evHandler() func(v string, args ...any) {
	if !verbose {
		return nil
	}

	return func(v string, args ...any) {
		pterm.Debug.Printfln(v, args...)
	}
}
