// Package types defines the shared data structures exchanged between the
// report generation components.
package types

import (
	"fmt"
	"sort"
	"strconv"
)

// PropertyContext holds the scraped/pasted listing data for a single property.
// Keys are produced by the (external) enrichment layer; values are plain JSON
// scalars, string slices, or PreferenceProfile instances.
type PropertyContext map[string]any

// Well-known context keys. The enrichment layer is free to add more; the
// engine only ever reads, never writes.
const (
	KeyAddress      = "address"
	KeyCity         = "city"
	KeyPropertyType = "property_type"
	KeyAskingPrice  = "asking_price"
	KeyLivingArea   = "living_area"
	KeyPlotArea     = "plot_area"
	KeyBuildYear    = "build_year"
	KeyEnergyLabel  = "energy_label"
	KeyRooms        = "rooms"
	KeyBedrooms     = "bedrooms"
	KeyDescription  = "description"
	KeyFeatures     = "features"
	KeyGarden       = "garden"
	KeyHeating      = "heating"
	KeyInsulation   = "insulation"
	KeyVVE          = "vve"
	KeyErfpacht     = "erfpacht"
	KeyWOZValue     = "woz_value"
	KeyPreferencesA = "preferences_a"
	KeyPreferencesB = "preferences_b"
)

// GetString returns the value for key rendered as a string, or "" if absent.
func (c PropertyContext) GetString(key string) string {
	v, ok := c[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprintf("%v", s)
	}
}

// GetInt returns the value for key as an int. JSON numbers decode as float64,
// so both representations are accepted. Returns 0 if absent or non-numeric.
func (c PropertyContext) GetInt(key string) int {
	switch v := c[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// GetFloat returns the value for key as a float64, or 0 if absent.
func (c PropertyContext) GetFloat(key string) float64 {
	switch v := c[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// GetStringSlice returns the value for key as a string slice. JSON arrays
// decode as []any, so both representations are accepted.
func (c PropertyContext) GetStringSlice(key string) []string {
	switch v := c[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Has reports whether key is present with a non-nil value.
func (c PropertyContext) Has(key string) bool {
	v, ok := c[key]
	return ok && v != nil
}

// SortedKeys returns the context keys in deterministic order, for stable
// prompt construction.
func (c PropertyContext) SortedKeys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
