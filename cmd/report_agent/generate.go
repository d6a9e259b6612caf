// Package main implements the report_agent CLI tool for property report generation.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/property-reporter/internal/config"
	"github.com/jonathan/property-reporter/internal/pipeline"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a full property report",
	Long:  "Generates all report chapters for a property data file, using the configured AI provider or the deterministic template narratives when none is set.",
	RunE:  runGenerate,
}

var (
	generateProperty    string
	generatePreferences string
	generateProvider    string
	generateModel       string
	generateBaseURL     string
	generateAPIKey      string
	generateTimeout     int
	generateConfigPath  string
	generateOutput      string
	generateVerbose     bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateProperty, "property", "p", "", "Path to property data JSON file (required)")
	generateCmd.Flags().StringVar(&generatePreferences, "preferences", "", "Path to buyer preferences JSON file")
	generateCmd.Flags().StringVar(&generateProvider, "provider", "", "AI provider: ollama, openai, anthropic, gemini (empty = template narratives)")
	generateCmd.Flags().StringVar(&generateModel, "model", "", "Model override for the chosen provider")
	generateCmd.Flags().StringVar(&generateBaseURL, "base-url", "", "Endpoint override (local model server / gateways)")
	generateCmd.Flags().StringVar(&generateAPIKey, "api-key", "", "API key for hosted providers (or use the vendor env var)")
	generateCmd.Flags().IntVar(&generateTimeout, "timeout", 0, "Per-call network timeout in seconds")
	generateCmd.Flags().StringVar(&generateConfigPath, "config", "", "Path to JSON config file with defaults")
	generateCmd.Flags().StringVarP(&generateOutput, "out", "o", "", "Path to output report JSON file")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print detailed debug information")

	if err := generateCmd.MarkFlagRequired("property"); err != nil {
		panic(fmt.Sprintf("failed to mark property flag as required: %v", err))
	}

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	cfg := config.Config{
		Property:       generateProperty,
		Preferences:    generatePreferences,
		Provider:       generateProvider,
		Model:          generateModel,
		BaseURL:        generateBaseURL,
		APIKey:         generateAPIKey,
		TimeoutSeconds: generateTimeout,
		Verbose:        generateVerbose,
	}

	// Config file values are defaults; flags win.
	if generateConfigPath != "" {
		fileCfg, err := config.LoadConfig(generateConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	cfg.FromEnv()

	if err := cfg.Validate(); err != nil {
		return err
	}

	report, err := pipeline.RunReport(cmdContext(), pipeline.RunOptions{
		PropertyPath:    cfg.Property,
		PreferencesPath: cfg.Preferences,
		Provider:        cfg.Provider,
		Model:           cfg.Model,
		BaseURL:         cfg.BaseURL,
		APIKey:          cfg.APIKey,
		TimeoutSeconds:  cfg.TimeoutSeconds,
		Verbose:         cfg.Verbose,
	})
	if err != nil {
		return fmt.Errorf("report generation failed: %w", err)
	}

	if generateOutput != "" {
		outputDir := filepath.Dir(generateOutput)
		if outputDir != "" && outputDir != "." {
			if err := os.MkdirAll(outputDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		jsonBytes, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report to JSON: %w", err)
		}
		if err := os.WriteFile(generateOutput, jsonBytes, 0644); err != nil {
			return fmt.Errorf("failed to write report to output file: %w", err)
		}
		fmt.Printf("Report written to %s\n", generateOutput)
	}

	if len(report.Violations) > 0 {
		return fmt.Errorf("report has %d contract violation(s)", len(report.Violations))
	}
	return nil
}
