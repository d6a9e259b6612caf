package types

// PreferenceProfile is one persona's wish list: the priorities they state
// openly plus the hidden priorities the intake flow derived for them. Both
// lists are read-only inputs supplied by the caller.
type PreferenceProfile struct {
	Priorities       []string `json:"priorities"`
	HiddenPriorities []string `json:"hidden_priorities"`
}

// AllTerms returns the concatenation of open and hidden priorities, in input
// order. The matcher treats both lists identically.
func (p PreferenceProfile) AllTerms() []string {
	terms := make([]string, 0, len(p.Priorities)+len(p.HiddenPriorities))
	terms = append(terms, p.Priorities...)
	terms = append(terms, p.HiddenPriorities...)
	return terms
}

// MatchResult is the deterministic outcome of matching one profile against a
// property. Matches and Misses keep the terms exactly as given (no
// normalization) so narrative text can cite them verbatim; together they
// partition the profile's terms.
type MatchResult struct {
	MatchScore float64  `json:"match_score"`
	Matches    []string `json:"matches"`
	Misses     []string `json:"misses"`
}
