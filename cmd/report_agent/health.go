package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/property-reporter/internal/config"
	"github.com/jonathan/property-reporter/internal/llm"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Probe an AI provider's reachability",
	Long:  "Constructs the named provider and runs its health probe and model listing.",
	RunE:  runHealth,
}

var (
	healthProvider string
	healthBaseURL  string
	healthAPIKey   string
)

func init() {
	healthCmd.Flags().StringVar(&healthProvider, "provider", "", "AI provider: ollama, openai, anthropic, gemini (required)")
	healthCmd.Flags().StringVar(&healthBaseURL, "base-url", "", "Endpoint override")
	healthCmd.Flags().StringVar(&healthAPIKey, "api-key", "", "API key for hosted providers (or use the vendor env var)")

	if err := healthCmd.MarkFlagRequired("provider"); err != nil {
		panic(fmt.Sprintf("failed to mark provider flag as required: %v", err))
	}

	rootCmd.AddCommand(healthCmd)
}

func runHealth(_ *cobra.Command, _ []string) error {
	cfg := config.Config{Provider: healthProvider, BaseURL: healthBaseURL, APIKey: healthAPIKey}
	cfg.FromEnv()

	ctx, cancel := context.WithTimeout(cmdContext(), 30*time.Second)
	defer cancel()

	provider, err := llm.CreateProvider(ctx, healthProvider, llm.Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return fmt.Errorf("provider setup failed: %w", err)
	}
	defer func() { _ = provider.Close() }()

	if provider.CheckHealth(ctx) {
		fmt.Printf("Provider %q is healthy\n", provider.Name())
	} else {
		fmt.Printf("Provider %q is NOT reachable\n", provider.Name())
	}

	models := provider.ListModels(ctx)
	fmt.Printf("Models: %s\n", strings.Join(models, ", "))
	return nil
}
