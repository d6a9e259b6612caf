// Package llm defines the uniform AI provider contract and its four
// implementations: a local Ollama server plus the OpenAI, Anthropic, and
// Gemini hosted APIs. Callers construct providers through CreateProvider and
// program exclusively against the Provider interface; everything
// vendor-specific (auth headers, JSON-mode mechanics, payload shapes) stays
// inside the concrete types.
package llm

import (
	"context"
	"fmt"
)

// GenerateRequest carries one text-generation call. Model overrides the
// provider's configured model for this call only; zero-valued fields fall
// back to provider defaults.
type GenerateRequest struct {
	Prompt      string
	System      string
	Model       string
	Temperature float64
	MaxTokens   int

	// JSONMode asks the provider for a single JSON object response, using
	// whatever mechanism the vendor offers (native response format, output
	// MIME type, or a strengthened system prompt).
	JSONMode bool

	// Options carries provider-specific knobs passed through verbatim.
	Options map[string]any
}

// Provider is the uniform surface over all AI backends. Generate and the
// probes take a context; CheckHealth and ListModels never return an error —
// a failed probe reports false or the static model list.
type Provider interface {
	// Generate performs one blocking text-generation round trip and returns
	// the raw model output.
	Generate(ctx context.Context, req GenerateRequest) (string, error)

	// CheckHealth reports whether the backend is reachable with the
	// configured credentials.
	CheckHealth(ctx context.Context) bool

	// ListModels returns the models this provider can serve. Never empty:
	// providers fall back to their statically declared list.
	ListModels(ctx context.Context) []string

	// Close releases held resources. Safe to call multiple times.
	Close() error

	// Name returns the provider's registry name.
	Name() string
}

// ConfigError reports invalid or missing provider configuration detected at
// construction time.
type ConfigError struct {
	Provider string
	Field    string
	Message  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s config error: %s: %s", e.Provider, e.Field, e.Message)
}

// TransportError reports a network-level failure: the request never produced
// a usable HTTP response. Timeout distinguishes deadline expiry from other
// faults.
type TransportError struct {
	Provider string
	Op       string
	Timeout  bool
	Cause    error
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s %s timed out: %v", e.Provider, e.Op, e.Cause)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Provider, e.Op, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// ResponseError reports that the backend answered but the answer is
// unusable: a non-OK status, a malformed body, or an in-band error payload.
type ResponseError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ResponseError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s returned an unusable response: %s", e.Provider, e.Message)
}
