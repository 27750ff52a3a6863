// Package main is a command-line client for the remittance quote
// aggregator, useful for scripting and local debugging without the
// HTTP surface.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "aggregatorctl",
		Short: "Command-line client for the remittance quote aggregator",
	}
	root.AddCommand(newQuoteCmd())
	root.AddCommand(newProvidersCmd())
	return root
}
