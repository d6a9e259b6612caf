package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDoc = `{
  "title": "Energie",
  "intro": "Inleiding",
  "main_analysis": "Analyse",
  "comparison": {"persona_a": "a", "persona_b": "b", "combined_advice": "c"},
  "variables": {"energy_label": {"value": "A", "status": "fact", "reasoning": "uit advertentie"}},
  "strengths": ["label"],
  "advice": ["check"],
  "conclusion": "Slot",
  "metadata": {"confidence": 0.8, "inferred_vars": [], "missing_vars": []}
}`

func TestValidateNarrativeJSON_ValidDocument(t *testing.T) {
	assert.NoError(t, ValidateNarrativeJSON(validDoc))
}

func TestValidateNarrativeJSON_MinimalDocument(t *testing.T) {
	doc := `{"title": "t", "intro": "i", "main_analysis": "m", "conclusion": "c"}`
	assert.NoError(t, ValidateNarrativeJSON(doc))
}

func TestValidateNarrativeJSON_MissingRequiredField(t *testing.T) {
	doc := `{"title": "t", "intro": "i", "main_analysis": "m"}`

	err := ValidateNarrativeJSON(doc)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	require.NotEmpty(t, valErr.Errors)
	assert.Contains(t, err.Error(), "conclusion")
}

func TestValidateNarrativeJSON_EmptyRequiredField(t *testing.T) {
	doc := `{"title": "", "intro": "i", "main_analysis": "m", "conclusion": "c"}`

	err := ValidateNarrativeJSON(doc)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestValidateNarrativeJSON_InvalidVariableStatus(t *testing.T) {
	doc := `{
	  "title": "t", "intro": "i", "main_analysis": "m", "conclusion": "c",
	  "variables": {"x": {"value": 1, "status": "guessed"}}
	}`

	err := ValidateNarrativeJSON(doc)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestValidateNarrativeJSON_ConfidenceOutOfRange(t *testing.T) {
	doc := `{
	  "title": "t", "intro": "i", "main_analysis": "m", "conclusion": "c",
	  "metadata": {"confidence": 1.5}
	}`

	err := ValidateNarrativeJSON(doc)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestValidateNarrativeJSON_MalformedJSON(t *testing.T) {
	err := ValidateNarrativeJSON(`{"title": `)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestValidationError_MessageListsFields(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "title", Message: "is required"},
		{Field: "intro", Message: "is required"},
	}}

	msg := err.Error()
	assert.Contains(t, msg, "1. title: is required")
	assert.Contains(t, msg, "2. intro: is required")
}
