package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProvider_UnsupportedName(t *testing.T) {
	provider, err := CreateProvider(context.Background(), "mistral-cloud", Config{})

	assert.Nil(t, provider)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `provider "mistral-cloud" is unsupported`)
}

func TestCreateProvider_EmptyName(t *testing.T) {
	_, err := CreateProvider(context.Background(), "", Config{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

func TestCreateProvider_Ollama(t *testing.T) {
	provider, err := CreateProvider(context.Background(), ProviderOllama, Config{BaseURL: "http://localhost:11434"})

	require.NoError(t, err)
	assert.Equal(t, ProviderOllama, provider.Name())
	assert.NoError(t, provider.Close())
}

func TestCreateProvider_OpenAIRequiresAPIKey(t *testing.T) {
	_, err := CreateProvider(context.Background(), ProviderOpenAI, Config{})

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, ProviderOpenAI, cfgErr.Provider)
	assert.Equal(t, "api_key", cfgErr.Field)
}

func TestCreateProvider_AnthropicRequiresAPIKey(t *testing.T) {
	_, err := CreateProvider(context.Background(), ProviderAnthropic, Config{})

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, ProviderAnthropic, cfgErr.Provider)
	assert.Equal(t, "api_key", cfgErr.Field)
}

func TestCreateProvider_GeminiRequiresAPIKey(t *testing.T) {
	_, err := CreateProvider(context.Background(), ProviderGemini, Config{})

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, ProviderGemini, cfgErr.Provider)
	assert.Equal(t, "api_key", cfgErr.Field)
}

func TestListProviders_ContainsAllFour(t *testing.T) {
	providers := ListProviders()

	require.Len(t, providers, 4)
	for _, name := range []string{ProviderOllama, ProviderOpenAI, ProviderAnthropic, ProviderGemini} {
		info, ok := providers[name]
		require.True(t, ok, "missing provider %q", name)
		assert.NotEmpty(t, info.Label)
		assert.NotEmpty(t, info.Models)
	}
}

func TestListProviders_ReturnsCopy(t *testing.T) {
	first := ListProviders()
	first[ProviderOllama].Models[0] = "mutated"
	delete(first, ProviderOpenAI)

	second := ListProviders()

	assert.Len(t, second, 4)
	assert.NotEqual(t, "mutated", second[ProviderOllama].Models[0])
}

func TestDefaultModel_KnownAndUnknown(t *testing.T) {
	assert.Equal(t, registry[ProviderOllama].Models[0], defaultModel(ProviderOllama))
	assert.Empty(t, defaultModel("nope"))
}

func TestDeclaredModels_UnknownProvider(t *testing.T) {
	assert.Nil(t, declaredModels("nope"))
}
