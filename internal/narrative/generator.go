package narrative

import (
	"context"
	"strings"

	"github.com/jonathan/property-reporter/internal/engine"
	"github.com/jonathan/property-reporter/internal/llm"
	"github.com/jonathan/property-reporter/internal/types"
)

// MinWords is the minimum narrative length for report chapters.
const MinWords = 300

// Generator produces full-length chapter narratives through an explicitly
// supplied provider. It shares the engine's prompt construction and parsing
// but applies the strict failure policy: no provider means failure, not a
// template.
type Generator struct {
	engine *engine.Engine
}

// NewGenerator builds a Generator on top of an engine instance.
func NewGenerator(e *engine.Engine) *Generator {
	return &Generator{engine: e}
}

// Generate produces the flattened narrative text for one chapter and
// computes its word count. A nil provider fails immediately with a
// *GenerationError; provider and parse failures propagate wrapped in the
// same error type.
func (g *Generator) Generate(ctx context.Context, chapterID int, pctx types.PropertyContext, provider llm.Provider) (*types.NarrativeOutput, error) {
	if provider == nil {
		return nil, &GenerationError{ChapterID: chapterID, Message: "no AI provider available"}
	}

	generated, err := g.engine.GenerateWithProvider(ctx, chapterID, pctx, provider)
	if err != nil {
		return nil, &GenerationError{ChapterID: chapterID, Message: "provider generation failed", Cause: err}
	}

	return types.NewNarrativeOutput(Flatten(generated)), nil
}

// ValidateMinimum checks a narrative against the minimum word count.
func ValidateMinimum(chapterID int, out *types.NarrativeOutput, minWords int) error {
	if out.WordCount < minWords {
		return &WordCountError{ChapterID: chapterID, WordCount: out.WordCount, Minimum: minWords}
	}
	return nil
}

// Flatten renders a GeneratedNarrative as the single narrative text the
// word-count contract applies to: intro, analysis, comparison, strengths,
// advice, and conclusion in reading order.
func Flatten(n *types.GeneratedNarrative) string {
	var sb strings.Builder

	appendSection := func(text string) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(text)
	}

	appendSection(n.Intro)
	appendSection(n.MainAnalysis)
	appendSection(n.Comparison.PersonaA)
	appendSection(n.Comparison.PersonaB)
	appendSection(n.Comparison.CombinedAdvice)
	if len(n.Strengths) > 0 {
		appendSection("Sterke punten: " + strings.Join(n.Strengths, " "))
	}
	if len(n.Advice) > 0 {
		appendSection("Advies: " + strings.Join(n.Advice, " "))
	}
	appendSection(n.Conclusion)

	return sb.String()
}
