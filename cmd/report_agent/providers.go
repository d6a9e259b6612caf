package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/property-reporter/internal/llm"
	"github.com/jonathan/property-reporter/internal/observability"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List the registered AI providers",
	Long:  "Prints the static provider registry: every provider name with its display label and declared model list.",
	RunE:  runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(_ *cobra.Command, _ []string) error {
	printer := observability.NewPrinter(os.Stdout)
	printer.PrintProviders(llm.ListProviders())
	return nil
}
