package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/property-reporter/internal/types"
)

func TestEnergyFallback_FavorableLabel(t *testing.T) {
	pctx := types.PropertyContext{
		types.KeyEnergyLabel: "A",
		types.KeyBuildYear:   float64(2022),
	}

	n := fallbackNarrative(4, pctx)

	assert.Contains(t, n.Intro, "energielabel A")
	assert.Contains(t, n.Intro, "energiezuinige")
	assert.Contains(t, n.MainAnalysis, "2022")
	assert.NotContains(t, n.Intro, "investering")
	for _, advice := range n.Advice {
		assert.NotContains(t, advice, "isolatie")
	}
}

func TestEnergyFallback_APlusVariants(t *testing.T) {
	for _, label := range []string{"A++", "A+++", "B"} {
		pctx := types.PropertyContext{types.KeyEnergyLabel: label}

		n := fallbackNarrative(4, pctx)

		assert.Contains(t, n.Intro, "energiezuinige", "label %s", label)
	}
}

func TestEnergyFallback_PoorLabel(t *testing.T) {
	pctx := types.PropertyContext{
		types.KeyEnergyLabel: "G",
		types.KeyBuildYear:   float64(1930),
	}

	n := fallbackNarrative(4, pctx)

	assert.Contains(t, n.Intro, "investering")
	assert.Contains(t, n.MainAnalysis, "1930")

	isolationAdvice := false
	for _, advice := range n.Advice {
		if strings.Contains(advice, "isolatie") {
			isolationAdvice = true
		}
	}
	assert.True(t, isolationAdvice, "poor label must advise insulation")
}

func TestEnergyFallback_MidRangeLabel(t *testing.T) {
	pctx := types.PropertyContext{types.KeyEnergyLabel: "C"}

	n := fallbackNarrative(4, pctx)

	assert.Contains(t, n.MainAnalysis, "gemiddeld label")
	assert.NotContains(t, n.Intro, "investering")
}

func TestEnergyFallback_MissingLabel(t *testing.T) {
	n := fallbackNarrative(4, types.PropertyContext{})

	assert.Contains(t, n.Intro, "niet bekend")
	assert.Equal(t, []string{types.KeyEnergyLabel}, n.Metadata.MissingVars)
}

func TestEnergyFallback_LowercaseLabelNormalized(t *testing.T) {
	pctx := types.PropertyContext{types.KeyEnergyLabel: " a "}

	n := fallbackNarrative(4, pctx)

	assert.Contains(t, n.Intro, "energielabel A")
}

func TestPreferenceFallback_ScoresBothPersonas(t *testing.T) {
	pctx := types.PropertyContext{
		types.KeyDescription: "Woning met grote tuin in rustige straat.",
		types.KeyFeatures:    []string{"Tuin", "Garage"},
		types.KeyPreferencesA: types.PreferenceProfile{
			Priorities: []string{"tuin", "garage"},
		},
		types.KeyPreferencesB: types.PreferenceProfile{
			Priorities: []string{"balkon", "lift"},
		},
	}

	n := fallbackNarrative(8, pctx)

	assert.Contains(t, n.Comparison.PersonaA, "100%")
	assert.Contains(t, n.Comparison.PersonaB, "0%")
	// Combined is the mean of 100 and 0.
	assert.Contains(t, n.Intro, "50%")
	assert.Contains(t, n.MainAnalysis, "tuin, garage")
}

func TestPreferenceFallback_DecodedJSONProfiles(t *testing.T) {
	pctx := types.PropertyContext{
		types.KeyFeatures: []any{"Tuin"},
		types.KeyPreferencesA: map[string]any{
			"priorities": []any{"tuin"},
		},
	}

	n := fallbackNarrative(8, pctx)

	require.NotNil(t, n)
	assert.Contains(t, n.Comparison.PersonaA, "100%")
}

func TestPreferenceFallback_NoProfilesUsesGenericTemplate(t *testing.T) {
	pctx := types.PropertyContext{
		types.KeyDescription: "Woning.",
	}

	n := fallbackNarrative(8, pctx)

	require.NotNil(t, n)
	assert.Equal(t, chapterTitles[8], n.Title)
	assert.NotContains(t, n.Intro, "%")
}

func TestGenericFallback_EchoesKnownFacts(t *testing.T) {
	pctx := types.PropertyContext{
		types.KeyAddress: "Keizersgracht 1",
		types.KeyCity:    "Amsterdam",
	}

	n := fallbackNarrative(1, pctx)

	assert.Contains(t, n.MainAnalysis, "address: Keizersgracht 1")
	assert.Contains(t, n.MainAnalysis, "city: Amsterdam")
	assert.Empty(t, n.Metadata.MissingVars)
}

func TestGenericFallback_ReportsMissingKeys(t *testing.T) {
	n := fallbackNarrative(1, types.PropertyContext{})

	assert.Contains(t, n.MainAnalysis, "geen gegevens beschikbaar")
	assert.ElementsMatch(t, []string{types.KeyAddress, types.KeyCity}, n.Metadata.MissingVars)
}

func TestGenericFallback_NeverEchoesUnrelatedKeys(t *testing.T) {
	pctx := types.PropertyContext{
		types.KeyAddress:     "Keizersgracht 1",
		types.KeyAskingPrice: float64(500000),
	}

	// Chapter 1 is location-only; the asking price must not leak into it.
	n := fallbackNarrative(1, pctx)

	assert.NotContains(t, n.MainAnalysis, "500000")
}

func TestChapterTitles_CoverAllChapters(t *testing.T) {
	for id := 0; id <= 13; id++ {
		assert.NotEmpty(t, chapterTitles[id], "chapter %d", id)
	}
}
