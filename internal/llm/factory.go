package llm

import (
	"context"
	"fmt"
)

// Provider names accepted by CreateProvider.
const (
	ProviderOllama    = "ollama"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// ProviderInfo is the static registry entry for one provider: its display
// label and the models it declares support for.
type ProviderInfo struct {
	Label  string   `json:"label"`
	Models []string `json:"models"`
}

// registry is the process-wide constant mapping of provider name to static
// metadata. It is never mutated at runtime.
var registry = map[string]ProviderInfo{
	ProviderOllama: {
		Label:  "Ollama (lokaal)",
		Models: []string{"llama3.1", "llama3.1:70b", "mistral-nemo", "qwen2.5"},
	},
	ProviderOpenAI: {
		Label:  "OpenAI",
		Models: []string{"gpt-4o", "gpt-4o-mini", "gpt-4.1", "gpt-4.1-mini"},
	},
	ProviderAnthropic: {
		Label:  "Anthropic Claude",
		Models: []string{"claude-sonnet-4-20250514", "claude-3-5-haiku-20241022"},
	},
	ProviderGemini: {
		Label:  "Google Gemini",
		Models: []string{"gemini-2.5-flash", "gemini-2.5-flash-lite", "gemini-2.5-pro"},
	},
}

// CreateProvider validates name against the registry and constructs a
// ready-to-use provider. Configuration errors raised by the provider
// constructor propagate unchanged; an unknown name fails with an
// "unsupported" error naming the value.
func CreateProvider(ctx context.Context, name string, cfg Config) (Provider, error) {
	switch name {
	case ProviderOllama:
		return NewOllamaProvider(cfg)
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg)
	case ProviderAnthropic:
		return NewAnthropicProvider(cfg)
	case ProviderGemini:
		return NewGeminiProvider(ctx, cfg)
	default:
		return nil, fmt.Errorf("provider %q is unsupported", name)
	}
}

// ListProviders returns the complete static registry. The returned map is a
// copy; callers cannot mutate the registry through it.
func ListProviders() map[string]ProviderInfo {
	out := make(map[string]ProviderInfo, len(registry))
	for name, info := range registry {
		models := make([]string, len(info.Models))
		copy(models, info.Models)
		out[name] = ProviderInfo{Label: info.Label, Models: models}
	}
	return out
}

// defaultModel returns the first declared model for a registered provider.
func defaultModel(name string) string {
	info, ok := registry[name]
	if !ok || len(info.Models) == 0 {
		return ""
	}
	return info.Models[0]
}

// declaredModels returns a copy of the registry's model list for a provider.
func declaredModels(name string) []string {
	info, ok := registry[name]
	if !ok {
		return nil
	}
	models := make([]string, len(info.Models))
	copy(models, info.Models)
	return models
}
