package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenAITestProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	provider, err := NewOpenAIProvider(Config{APIKey: "sk-test", BaseURL: server.URL})
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Close() })
	return provider
}

func openAIResponse(content string) openAIChatResponse {
	var resp openAIChatResponse
	resp.Choices = []struct {
		Message openAIMessage `json:"message"`
	}{{Message: openAIMessage{Role: "assistant", Content: content}}}
	return resp
}

func TestOpenAIGenerate_Success(t *testing.T) {
	var captured openAIChatRequest
	provider := newOpenAITestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(openAIResponse(`{"title": "ok"}`))
	})

	result, err := provider.Generate(context.Background(), GenerateRequest{
		Prompt:   "write",
		System:   "you are a writer",
		JSONMode: true,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"title": "ok"}`, result)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "user", captured.Messages[1].Role)
	require.NotNil(t, captured.ResponseFormat)
	assert.Equal(t, "json_object", captured.ResponseFormat.Type)
}

func TestOpenAIGenerate_NoSystemMessage(t *testing.T) {
	var captured openAIChatRequest
	provider := newOpenAITestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(openAIResponse("ok"))
	})

	_, err := provider.Generate(context.Background(), GenerateRequest{Prompt: "write"})

	require.NoError(t, err)
	require.Len(t, captured.Messages, 1)
	assert.Equal(t, "user", captured.Messages[0].Role)
	assert.Nil(t, captured.ResponseFormat)
}

func TestOpenAIGenerate_APIError(t *testing.T) {
	provider := newOpenAITestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "Invalid API key"}}`))
	})

	_, err := provider.Generate(context.Background(), GenerateRequest{Prompt: "p"})

	var respErr *ResponseError
	require.ErrorAs(t, err, &respErr)
	assert.Equal(t, http.StatusUnauthorized, respErr.StatusCode)
	assert.Equal(t, "Invalid API key", respErr.Message)
}

func TestOpenAIGenerate_NoChoices(t *testing.T) {
	provider := newOpenAITestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	})

	_, err := provider.Generate(context.Background(), GenerateRequest{Prompt: "p"})

	var respErr *ResponseError
	require.ErrorAs(t, err, &respErr)
	assert.Contains(t, respErr.Message, "no choices")
}

func TestOpenAICheckHealth(t *testing.T) {
	provider := newOpenAITestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	})

	assert.True(t, provider.CheckHealth(context.Background()))
}

func TestOpenAIListModels_StaticList(t *testing.T) {
	provider, err := NewOpenAIProvider(Config{APIKey: "sk-test"})
	require.NoError(t, err)
	defer func() { _ = provider.Close() }()

	models := provider.ListModels(context.Background())

	assert.Equal(t, declaredModels(ProviderOpenAI), models)
	assert.NotEmpty(t, models)
}
