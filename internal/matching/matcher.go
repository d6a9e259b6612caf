// Package matching computes deterministic preference match scores for the
// two buyer personas against a property's description and feature list.
// Everything here is a pure function; results are computed fresh on every
// call and never cached.
package matching

import (
	"math"
	"strings"

	"github.com/jonathan/property-reporter/internal/types"
)

// NeutralScore is returned when a profile declares no priorities at all:
// with nothing to match there is no signal either way.
const NeutralScore = 50.0

// MatchProfile scores one persona's profile against the property. A term
// matches when it appears (case-insensitive) in the feature list or as a
// substring of the free-text description. Matches and misses keep the terms
// as given and together partition the profile's priorities exactly.
func MatchProfile(profile types.PreferenceProfile, description string, features []string) types.MatchResult {
	terms := profile.AllTerms()
	if len(terms) == 0 {
		return types.MatchResult{
			MatchScore: NeutralScore,
			Matches:    []string{},
			Misses:     []string{},
		}
	}

	descLower := strings.ToLower(description)
	featuresLower := make([]string, len(features))
	for i, f := range features {
		featuresLower[i] = strings.ToLower(f)
	}

	matches := make([]string, 0, len(terms))
	misses := make([]string, 0, len(terms))
	for _, term := range terms {
		if termMatches(strings.ToLower(term), descLower, featuresLower) {
			matches = append(matches, term)
		} else {
			misses = append(misses, term)
		}
	}

	score := math.Round(100 * float64(len(matches)) / float64(len(terms)))
	return types.MatchResult{
		MatchScore: score,
		Matches:    matches,
		Misses:     misses,
	}
}

// termMatches tests one lowercased term against the lowercased feature list
// and description.
func termMatches(term, descLower string, featuresLower []string) bool {
	if term == "" {
		return false
	}
	for _, feature := range featuresLower {
		if feature == term || strings.Contains(feature, term) {
			return true
		}
	}
	return strings.Contains(descLower, term)
}

// CombinedScore aggregates the two per-persona scores as their arithmetic
// mean.
func CombinedScore(a, b types.MatchResult) float64 {
	return (a.MatchScore + b.MatchScore) / 2
}
