// Package main provides the entry point for the Property Reporter CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "report_agent",
	Short: "Property Reporter CLI",
	Long:  "Property Reporter generates multi-chapter purchase reports for property listings, combining listing data with AI-generated analysis per chapter.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
