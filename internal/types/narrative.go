package types

import "strings"

// VariableInsight describes one property variable referenced by the AI in its
// analysis, with provenance: "fact" for values taken from the listing data,
// "inferred" for values the model derived itself.
type VariableInsight struct {
	Value     any    `json:"value"`
	Status    string `json:"status" validate:"omitempty,oneof=fact inferred"`
	Reasoning string `json:"reasoning,omitempty"`
}

// PersonaComparison contains the per-persona assessment of a chapter plus
// combined advice for both.
type PersonaComparison struct {
	PersonaA       string `json:"persona_a"`
	PersonaB       string `json:"persona_b"`
	CombinedAdvice string `json:"combined_advice"`
}

// NarrativeMetadata carries the model's self-reported confidence and which
// variables it inferred or found missing.
type NarrativeMetadata struct {
	Confidence   float64  `json:"confidence"`
	InferredVars []string `json:"inferred_vars,omitempty"`
	MissingVars  []string `json:"missing_vars,omitempty"`
}

// GeneratedNarrative is the structured per-chapter payload returned by a
// provider (as JSON) or by the template fallback. It is created per
// generation call and consumed once by the presentation layer; the core
// never persists it.
type GeneratedNarrative struct {
	Title        string                     `json:"title" validate:"required"`
	Intro        string                     `json:"intro" validate:"required"`
	MainAnalysis string                     `json:"main_analysis" validate:"required"`
	Comparison   PersonaComparison          `json:"comparison"`
	Variables    map[string]VariableInsight `json:"variables,omitempty"`
	Strengths    []string                   `json:"strengths"`
	Advice       []string                   `json:"advice"`
	Conclusion   string                     `json:"conclusion" validate:"required"`
	Metadata     NarrativeMetadata          `json:"metadata"`
}

// NarrativeOutput is the minimum-length contract exchanged with the
// presentation layer: the flattened narrative text plus its word count.
type NarrativeOutput struct {
	Text      string `json:"text"`
	WordCount int    `json:"word_count"`
}

// NewNarrativeOutput builds a NarrativeOutput with WordCount computed from
// the whitespace-delimited tokens of text.
func NewNarrativeOutput(text string) *NarrativeOutput {
	return &NarrativeOutput{
		Text:      text,
		WordCount: len(strings.Fields(text)),
	}
}

// MeetsMinimum reports whether the narrative is at least n words long.
func (n *NarrativeOutput) MeetsMinimum(minWords int) bool {
	return n.WordCount >= minWords
}

// ChapterOutput is the per-chapter result handed to the validation gate and
// the presentation layer.
type ChapterOutput struct {
	ChapterID int                 `json:"chapter_id"`
	Generated *GeneratedNarrative `json:"generated,omitempty"`
	Narrative *NarrativeOutput    `json:"narrative,omitempty"`
	AISourced bool                `json:"ai_sourced"`
}
