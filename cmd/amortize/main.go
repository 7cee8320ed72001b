// Command amortize computes loan amortization schedules from a calculation
// file or serves the same calculations over HTTP.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

type rootOptions struct {
	logLevel string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "amortize",
		Short: "Fixed-rate loan amortization calculator",
		Long: `amortize solves for the payment, term, rate or principal of a
fixed-rate loan and expands it into a payment-by-payment schedule,
including recurring and one-time extra principal payments.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(newCalculateCommand(opts))
	rootCmd.AddCommand(newServeCommand(opts))
	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
