package engine

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/property-reporter/internal/llm"
	"github.com/jonathan/property-reporter/internal/schemas"
	"github.com/jonathan/property-reporter/internal/types"
)

// ParseError reports provider output that could not be turned into a
// GeneratedNarrative: no JSON present, schema-invalid JSON, or a decoded
// payload missing required fields.
type ParseError struct {
	Message string
	Raw     string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("narrative parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("narrative parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// parseNarrative extracts the first well-formed JSON object from the raw
// provider output, validates it against the narrative schema, and decodes it
// into a GeneratedNarrative.
func (e *Engine) parseNarrative(raw string) (*types.GeneratedNarrative, error) {
	doc, err := llm.ExtractJSON(raw)
	if err != nil {
		return nil, &ParseError{Message: "no JSON object in provider output", Raw: raw, Cause: err}
	}

	if err := schemas.ValidateNarrativeJSON(doc); err != nil {
		return nil, &ParseError{Message: "provider output violates narrative schema", Raw: raw, Cause: err}
	}

	var narrative types.GeneratedNarrative
	if err := json.Unmarshal([]byte(doc), &narrative); err != nil {
		return nil, &ParseError{Message: "failed to decode narrative JSON", Raw: raw, Cause: err}
	}

	if err := e.validate.Struct(&narrative); err != nil {
		return nil, &ParseError{Message: "decoded narrative is incomplete", Raw: raw, Cause: err}
	}

	// The presentation layer ranges over these unconditionally.
	if narrative.Strengths == nil {
		narrative.Strengths = []string{}
	}
	if narrative.Advice == nil {
		narrative.Advice = []string{}
	}

	return &narrative, nil
}
