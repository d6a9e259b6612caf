package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const openAIDefaultURL = "https://api.openai.com/v1"

// OpenAIProvider talks to the OpenAI chat completions API, or any
// OpenAI-compatible gateway when a base URL override is given.
type OpenAIProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewOpenAIProvider constructs the OpenAI provider. A non-empty API key is
// mandatory; constructing without one fails immediately.
func NewOpenAIProvider(cfg Config) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, &ConfigError{Provider: ProviderOpenAI, Field: "api_key", Message: "api_key is required"}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = openAIDefaultURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel(ProviderOpenAI)
	}

	return &OpenAIProvider{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: cfg.timeout()},
	}, nil
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatRequest struct {
	Model          string          `json:"model"`
	Messages       []openAIMessage `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format,omitempty"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate performs one round trip against /chat/completions.
func (p *OpenAIProvider) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}

	messages := make([]openAIMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openAIMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, openAIMessage{Role: "user", Content: req.Prompt})

	body := openAIChatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.JSONMode {
		body.ResponseFormat = &struct {
			Type string `json:"type"`
		}{Type: "json_object"}
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", classifyTransportError(ProviderOpenAI, "generate", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classifyTransportError(ProviderOpenAI, "generate", err)
	}

	var out openAIChatResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return "", &ResponseError{Provider: ProviderOpenAI, StatusCode: resp.StatusCode, Message: fmt.Sprintf("malformed response body: %v", err)}
	}
	if resp.StatusCode != http.StatusOK {
		msg := truncateBody(payload)
		if out.Error != nil {
			msg = out.Error.Message
		}
		return "", &ResponseError{Provider: ProviderOpenAI, StatusCode: resp.StatusCode, Message: msg}
	}
	if len(out.Choices) == 0 {
		return "", &ResponseError{Provider: ProviderOpenAI, Message: "no choices in response"}
	}
	return out.Choices[0].Message.Content, nil
}

// CheckHealth probes the models endpoint with the configured credential.
func (p *OpenAIProvider) CheckHealth(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/models", nil)
	if err != nil {
		return false
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode == http.StatusOK
}

// ListModels returns the statically declared model list. A live /models
// query returns hundreds of non-chat entries, so the curated list is the
// useful one.
func (p *OpenAIProvider) ListModels(ctx context.Context) []string {
	return declaredModels(ProviderOpenAI)
}

// Close releases idle connections. Safe to call multiple times.
func (p *OpenAIProvider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

// Name returns the registry name of this provider.
func (p *OpenAIProvider) Name() string {
	return ProviderOpenAI
}
