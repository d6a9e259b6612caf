// Package engine converts a chapter id plus a property-data context into a
// validated GeneratedNarrative, routing through the active AI provider when
// one is configured and through a deterministic template fallback when not.
//
// Failure policy: once a provider is explicitly configured, any provider or
// parse failure propagates as a hard error ("fail-closed"). The template
// fallback is reserved strictly for the no-provider case and never fails.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/property-reporter/internal/bridge"
	"github.com/jonathan/property-reporter/internal/llm"
	"github.com/jonathan/property-reporter/internal/types"
)

// defaultTemperature keeps chapter output consistent while leaving room for
// natural phrasing.
const defaultTemperature = 0.4

// aiDisclaimer is appended to AI-authored analysis text so downstream
// consumers can distinguish it from template-authored text.
const aiDisclaimer = "\n\nDeze analyse is automatisch gegenereerd met behulp van AI en kan onnauwkeurigheden bevatten."

// Engine holds the process-wide active provider reference. The slot has
// single-writer semantics: it is set through SetProvider by configuration
// events only, never from within a generation call. At most one provider is
// active at a time; nil means "no AI available".
type Engine struct {
	mu       sync.RWMutex
	provider llm.Provider
	validate *validator.Validate
}

// New constructs an Engine with no active provider.
func New() *Engine {
	return &Engine{validate: validator.New()}
}

// SetProvider installs p as the active provider. Passing nil clears the
// slot, which switches generation to the template fallback.
func (e *Engine) SetProvider(p llm.Provider) {
	e.mu.Lock()
	e.provider = p
	e.mu.Unlock()
}

// CurrentProvider returns the active provider, or nil when none is set.
func (e *Engine) CurrentProvider() llm.Provider {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.provider
}

// GenerateChapterNarrative produces the narrative for one chapter. The
// provider reference is read once at the start of the call, so a concurrent
// SetProvider never swaps providers mid-generation.
func (e *Engine) GenerateChapterNarrative(ctx context.Context, chapterID int, pctx types.PropertyContext) (*types.GeneratedNarrative, error) {
	if chapterID == MediaChapterID {
		return mediaChapterResult(), nil
	}
	if _, err := ChapterGoal(chapterID); err != nil {
		return nil, err
	}

	provider := e.CurrentProvider()
	if provider == nil {
		return fallbackNarrative(chapterID, pctx), nil
	}

	return e.GenerateWithProvider(ctx, chapterID, pctx, provider)
}

// GenerateWithProvider produces the narrative for one chapter through the
// given provider, bridging the asynchronous network call and parsing the
// JSON payload. Provider and parse failures propagate to the caller.
func (e *Engine) GenerateWithProvider(ctx context.Context, chapterID int, pctx types.PropertyContext, provider llm.Provider) (*types.GeneratedNarrative, error) {
	goal, err := ChapterGoal(chapterID)
	if err != nil {
		return nil, err
	}

	system := buildSystemPrompt(goal, pctx)
	user := buildUserPrompt(chapterID, pctx)

	raw, err := bridge.Run(ctx, func(callCtx context.Context) (string, error) {
		return provider.Generate(callCtx, llm.GenerateRequest{
			Prompt:      user,
			System:      system,
			Temperature: defaultTemperature,
			JSONMode:    true,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("provider %s failed for chapter %d: %w", provider.Name(), chapterID, err)
	}

	narrative, err := e.parseNarrative(raw)
	if err != nil {
		return nil, fmt.Errorf("provider %s returned an unusable chapter %d payload: %w", provider.Name(), chapterID, err)
	}

	narrative.MainAnalysis += aiDisclaimer
	return narrative, nil
}

// mediaChapterResult is the minimal, non-narrative result for the media
// chapter.
func mediaChapterResult() *types.GeneratedNarrative {
	return &types.GeneratedNarrative{
		Title:        chapterTitles[MediaChapterID],
		Intro:        "Dit hoofdstuk bevat de foto's en plattegronden van de woning.",
		MainAnalysis: "Mediahoofdstuk: geen tekstuele analyse.",
		Strengths:    []string{},
		Advice:       []string{},
		Conclusion:   "Zie het beeldmateriaal.",
		Metadata:     types.NarrativeMetadata{Confidence: 1},
	}
}
