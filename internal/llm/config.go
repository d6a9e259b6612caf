package llm

import "time"

// DefaultTimeout bounds every provider network call. Generation round trips
// for a full chapter can legitimately take tens of seconds on local models.
const DefaultTimeout = 60 * time.Second

// Config holds the per-provider settings supplied at construction. It is
// read once by the provider constructor and never re-read mid-call; each
// provider instance owns its own copy for its lifetime.
type Config struct {
	// APIKey is the vendor credential. Required for the hosted providers,
	// ignored by the local model server.
	APIKey string

	// BaseURL overrides the provider's default endpoint. Only the local
	// model server and OpenAI-compatible gateways honor it.
	BaseURL string

	// Model overrides the provider's default model.
	Model string

	// Timeout bounds each network call. Zero means DefaultTimeout.
	Timeout time.Duration
}

// timeout returns the configured timeout or the package default.
func (c Config) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}
