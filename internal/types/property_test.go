package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyContext_GetString(t *testing.T) {
	pctx := PropertyContext{
		"s": "tekst",
		"f": float64(500000),
		"i": 42,
		"b": true,
		"n": nil,
	}

	assert.Equal(t, "tekst", pctx.GetString("s"))
	assert.Equal(t, "500000", pctx.GetString("f"))
	assert.Equal(t, "42", pctx.GetString("i"))
	assert.Equal(t, "true", pctx.GetString("b"))
	assert.Empty(t, pctx.GetString("n"))
	assert.Empty(t, pctx.GetString("missing"))
}

func TestPropertyContext_GetInt(t *testing.T) {
	pctx := PropertyContext{
		"float":  float64(1995),
		"int":    4,
		"string": "7",
		"bad":    "zeven",
	}

	assert.Equal(t, 1995, pctx.GetInt("float"))
	assert.Equal(t, 4, pctx.GetInt("int"))
	assert.Equal(t, 7, pctx.GetInt("string"))
	assert.Equal(t, 0, pctx.GetInt("bad"))
	assert.Equal(t, 0, pctx.GetInt("missing"))
}

func TestPropertyContext_GetFloat(t *testing.T) {
	pctx := PropertyContext{
		"float":  465000.5,
		"int":    3,
		"string": "2.5",
	}

	assert.Equal(t, 465000.5, pctx.GetFloat("float"))
	assert.Equal(t, 3.0, pctx.GetFloat("int"))
	assert.Equal(t, 2.5, pctx.GetFloat("string"))
	assert.Equal(t, 0.0, pctx.GetFloat("missing"))
}

func TestPropertyContext_GetStringSlice(t *testing.T) {
	pctx := PropertyContext{
		"typed":   []string{"tuin", "garage"},
		"decoded": []any{"tuin", 3, "garage"},
		"scalar":  "tuin",
	}

	assert.Equal(t, []string{"tuin", "garage"}, pctx.GetStringSlice("typed"))
	// Non-string elements in decoded JSON arrays are skipped.
	assert.Equal(t, []string{"tuin", "garage"}, pctx.GetStringSlice("decoded"))
	assert.Nil(t, pctx.GetStringSlice("scalar"))
	assert.Nil(t, pctx.GetStringSlice("missing"))
}

func TestPropertyContext_Has(t *testing.T) {
	pctx := PropertyContext{"present": "x", "nil": nil}

	assert.True(t, pctx.Has("present"))
	assert.False(t, pctx.Has("nil"))
	assert.False(t, pctx.Has("missing"))
}

func TestPropertyContext_SortedKeys(t *testing.T) {
	pctx := PropertyContext{"c": 1, "a": 2, "b": 3}

	assert.Equal(t, []string{"a", "b", "c"}, pctx.SortedKeys())
}

func TestPropertyContext_DecodesFromListingJSON(t *testing.T) {
	data := `{
	  "address": "Keizersgracht 1",
	  "asking_price": 465000,
	  "features": ["Tuin", "CV-ketel"],
	  "energy_label": "A"
	}`

	var pctx PropertyContext
	require.NoError(t, json.Unmarshal([]byte(data), &pctx))

	assert.Equal(t, "Keizersgracht 1", pctx.GetString(KeyAddress))
	assert.Equal(t, 465000, pctx.GetInt(KeyAskingPrice))
	assert.Equal(t, []string{"Tuin", "CV-ketel"}, pctx.GetStringSlice(KeyFeatures))
	assert.Equal(t, "A", pctx.GetString(KeyEnergyLabel))
}
