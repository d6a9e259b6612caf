// Package pipeline provides the high-level orchestration for generating a
// full property report: provider setup, per-chapter narrative generation,
// and contract validation.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/property-reporter/internal/engine"
	"github.com/jonathan/property-reporter/internal/llm"
	"github.com/jonathan/property-reporter/internal/narrative"
	"github.com/jonathan/property-reporter/internal/observability"
	"github.com/jonathan/property-reporter/internal/types"
	"github.com/jonathan/property-reporter/internal/validation"
)

// maxParallelChapters bounds concurrent provider calls; hosted vendors rate
// limit aggressively and local models serialize anyway.
const maxParallelChapters = 4

// RunOptions holds configuration for running the report pipeline.
type RunOptions struct {
	PropertyPath    string
	PreferencesPath string
	Provider        string
	Model           string
	BaseURL         string
	APIKey          string
	TimeoutSeconds  int
	Verbose         bool
}

// Report is the aggregated result of one pipeline run.
type Report struct {
	RunID      uuid.UUID                    `json:"run_id"`
	Chapters   map[int]*types.ChapterOutput `json:"chapters"`
	Violations []string                     `json:"violations"`
}

// preferencesFile is the on-disk shape of the buyer preferences input.
type preferencesFile struct {
	PersonaA types.PreferenceProfile `json:"persona_a"`
	PersonaB types.PreferenceProfile `json:"persona_b"`
}

// RunReport generates all report chapters for one property and validates
// them against the narrative contract. Chapter generation failures abort the
// run (fail-closed once a provider is configured); contract violations do
// not — they are aggregated on the returned report.
func RunReport(ctx context.Context, opts RunOptions) (*Report, error) {
	printer := observability.NewPrinter(os.Stdout)
	runID := uuid.New()

	fmt.Printf("Step 1/4: Loading property data from %s...\n", opts.PropertyPath)
	pctx, err := loadPropertyContext(opts.PropertyPath)
	if err != nil {
		return nil, fmt.Errorf("loading property data failed: %w", err)
	}

	if opts.PreferencesPath != "" {
		fmt.Printf("Step 2/4: Loading buyer preferences from %s...\n", opts.PreferencesPath)
		if err := loadPreferences(opts.PreferencesPath, pctx); err != nil {
			return nil, fmt.Errorf("loading preferences failed: %w", err)
		}
	} else {
		fmt.Printf("Step 2/4: No preferences file given, skipping preference profiles...\n")
	}

	eng := engine.New()
	if opts.Provider != "" {
		fmt.Printf("Step 3/4: Configuring AI provider %q...\n", opts.Provider)
		provider, err := llm.CreateProvider(ctx, opts.Provider, llm.Config{
			APIKey:  opts.APIKey,
			BaseURL: opts.BaseURL,
			Model:   opts.Model,
			Timeout: time.Duration(opts.TimeoutSeconds) * time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("provider setup failed: %w", err)
		}
		defer func() { _ = provider.Close() }()

		if !provider.CheckHealth(ctx) {
			fmt.Printf("Warning: provider %q did not pass the health probe; generation may fail.\n", opts.Provider)
		}
		eng.SetProvider(provider)
	} else {
		fmt.Printf("Step 3/4: No AI provider configured, using template narratives...\n")
	}

	fmt.Printf("Step 4/4: Generating %d chapters...\n", validation.MediaChapterID+1)
	chapters := make(map[int]*types.ChapterOutput)
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelChapters)

	aiSourced := eng.CurrentProvider() != nil
	for id := 0; id <= validation.MediaChapterID; id++ {
		id := id
		g.Go(func() error {
			generated, err := eng.GenerateChapterNarrative(gCtx, id, pctx)
			if err != nil {
				return fmt.Errorf("chapter %d failed: %w", id, err)
			}

			output := &types.ChapterOutput{
				ChapterID: id,
				Generated: generated,
				AISourced: aiSourced,
			}
			if id != validation.MediaChapterID {
				output.Narrative = types.NewNarrativeOutput(narrative.Flatten(generated))
			}

			mu.Lock()
			chapters[id] = output
			mu.Unlock()

			if opts.Verbose {
				printer.PrintNarrative(id, generated)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	violations := validation.ValidateReport(chapters, pctx)
	if opts.Verbose {
		printer.PrintViolations(violations)
	}

	if len(violations) > 0 {
		fmt.Printf("Done with %d contract violations.\n", len(violations))
	} else {
		fmt.Printf("Done! All chapters meet the narrative contract.\n")
	}

	return &Report{
		RunID:      runID,
		Chapters:   chapters,
		Violations: violations,
	}, nil
}

// loadPropertyContext reads the property data JSON file.
func loadPropertyContext(path string) (types.PropertyContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read property file: %w", err)
	}

	var pctx types.PropertyContext
	if err := json.Unmarshal(data, &pctx); err != nil {
		return nil, fmt.Errorf("failed to parse property JSON: %w", err)
	}
	return pctx, nil
}

// loadPreferences reads the preferences file and injects both persona
// profiles into the context under their well-known keys.
func loadPreferences(path string, pctx types.PropertyContext) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read preferences file: %w", err)
	}

	var prefs preferencesFile
	if err := json.Unmarshal(data, &prefs); err != nil {
		return fmt.Errorf("failed to parse preferences JSON: %w", err)
	}

	pctx[types.KeyPreferencesA] = prefs.PersonaA
	pctx[types.KeyPreferencesB] = prefs.PersonaB
	return nil
}
