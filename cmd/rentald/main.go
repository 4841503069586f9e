// Command rentald runs the car rental engine behind an HTTP API and offers
// offline cost quotes from the command line.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rentald",
		Short:         "Car rental fleet, booking and pricing engine",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (env RENTAL_* overrides)")

	root.AddCommand(newServeCmd())
	root.AddCommand(newQuoteCmd())
	return root
}
