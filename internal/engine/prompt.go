package engine

import (
	"fmt"
	"strings"

	"github.com/jonathan/property-reporter/internal/prompts"
	"github.com/jonathan/property-reporter/internal/types"
)

// buildSystemPrompt assembles the chapter's system prompt: the focus
// statement, the persona preference profiles (verbatim, when present in the
// context), and the JSON-shape instruction from the embedded template.
func buildSystemPrompt(goal string, pctx types.PropertyContext) string {
	preferences := ""
	profileA, okA := profileFromContext(pctx, types.KeyPreferencesA)
	profileB, okB := profileFromContext(pctx, types.KeyPreferencesB)
	if okA || okB {
		template := prompts.MustGet("chapters.json", "system-preferences")
		preferences = prompts.Format(template, map[string]string{
			"PersonaA": formatPriorities(profileA),
			"PersonaB": formatPriorities(profileB),
		})
	}

	template := prompts.MustGet("chapters.json", "system-narrative")
	return prompts.Format(template, map[string]string{
		"ChapterGoal": goal,
		"Preferences": preferences,
	})
}

// buildUserPrompt renders the chapter's context subset as "key: value"
// lines, in deterministic order, including only values actually present.
func buildUserPrompt(chapterID int, pctx types.PropertyContext) string {
	subset := contextSubset(chapterID, pctx)

	var sb strings.Builder
	for _, key := range subset.SortedKeys() {
		switch v := subset[key].(type) {
		case []string:
			sb.WriteString(fmt.Sprintf("%s: %s\n", key, strings.Join(v, ", ")))
		case []any:
			sb.WriteString(fmt.Sprintf("%s: %s\n", key, strings.Join(subset.GetStringSlice(key), ", ")))
		default:
			sb.WriteString(fmt.Sprintf("%s: %s\n", key, subset.GetString(key)))
		}
	}
	block := sb.String()
	if block == "" {
		block = "(no data available for this chapter)"
	}

	template := prompts.MustGet("chapters.json", "user-context")
	return prompts.Format(template, map[string]string{
		"ContextBlock": strings.TrimSuffix(block, "\n"),
	})
}

// profileFromContext extracts a persona profile stored in the context either
// as a typed struct or as decoded JSON.
func profileFromContext(pctx types.PropertyContext, key string) (types.PreferenceProfile, bool) {
	switch v := pctx[key].(type) {
	case types.PreferenceProfile:
		return v, true
	case *types.PreferenceProfile:
		if v != nil {
			return *v, true
		}
	case map[string]any:
		profile := types.PreferenceProfile{}
		if raw, ok := v["priorities"].([]any); ok {
			for _, item := range raw {
				if s, ok := item.(string); ok {
					profile.Priorities = append(profile.Priorities, s)
				}
			}
		}
		if raw, ok := v["hidden_priorities"].([]any); ok {
			for _, item := range raw {
				if s, ok := item.(string); ok {
					profile.HiddenPriorities = append(profile.HiddenPriorities, s)
				}
			}
		}
		return profile, true
	}
	return types.PreferenceProfile{}, false
}

// formatPriorities renders a profile's priority lists verbatim for the
// system prompt.
func formatPriorities(p types.PreferenceProfile) string {
	if len(p.Priorities) == 0 && len(p.HiddenPriorities) == 0 {
		return "(none stated)"
	}
	parts := make([]string, 0, 2)
	if len(p.Priorities) > 0 {
		parts = append(parts, strings.Join(p.Priorities, ", "))
	}
	if len(p.HiddenPriorities) > 0 {
		parts = append(parts, "hidden: "+strings.Join(p.HiddenPriorities, ", "))
	}
	return strings.Join(parts, "; ")
}
