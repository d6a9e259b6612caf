package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/property-reporter/internal/llm"
	"github.com/jonathan/property-reporter/internal/types"
)

func TestPrintNarrative_ShowsTitleAndConfidence(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintNarrative(4, &types.GeneratedNarrative{
		Title:     "Energie en duurzaamheid",
		Intro:     "Inleiding.",
		Strengths: []string{"Gunstig label"},
		Advice:    []string{"Controleer het label."},
		Metadata:  types.NarrativeMetadata{Confidence: 0.85},
	})

	output := buf.String()
	assert.Contains(t, output, "CHAPTER 4 NARRATIVE")
	assert.Contains(t, output, "Energie en duurzaamheid")
	assert.Contains(t, output, "0.85")
	assert.Contains(t, output, "Gunstig label")
}

func TestPrintNarrative_NilNarrativePrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintNarrative(4, nil)

	assert.Empty(t, buf.String())
}

func TestPrintMatchResults(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintMatchResults(
		types.MatchResult{MatchScore: 100, Matches: []string{"tuin"}},
		types.MatchResult{MatchScore: 0, Misses: []string{"garage"}},
		50,
	)

	output := buf.String()
	assert.Contains(t, output, "PREFERENCE MATCH")
	assert.Contains(t, output, "Combined:  50%")
	assert.Contains(t, output, "tuin")
	assert.Contains(t, output, "garage")
}

func TestPrintProviders(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintProviders(map[string]llm.ProviderInfo{
		"ollama": {Label: "Ollama (lokaal)", Models: []string{"llama3.1"}},
	})

	output := buf.String()
	assert.Contains(t, output, "REGISTERED PROVIDERS")
	assert.Contains(t, output, "ollama (Ollama (lokaal))")
	assert.Contains(t, output, "llama3.1")
}

func TestPrintViolations_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintViolations(nil)

	assert.Contains(t, buf.String(), "NO VIOLATIONS FOUND")
}

func TestPrintViolations_ListsEntries(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintViolations([]string{
		"Narrative Missing: chapter 3 has no narrative",
	})

	output := buf.String()
	assert.Contains(t, output, "CONTRACT VIOLATIONS")
	assert.Contains(t, output, "Found 1 violations")
	assert.Contains(t, output, "Narrative Missing")
}
