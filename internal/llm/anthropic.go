package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	anthropicDefaultURL = "https://api.anthropic.com/v1"
	anthropicVersion    = "2023-06-01"
	// anthropicDefaultMaxTokens applies when the caller leaves MaxTokens
	// unset; the messages API requires an explicit value.
	anthropicDefaultMaxTokens = 4096
)

// AnthropicProvider talks to the Anthropic messages API.
type AnthropicProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewAnthropicProvider constructs the Anthropic provider. A non-empty API
// key is mandatory; constructing without one fails immediately.
func NewAnthropicProvider(cfg Config) (*AnthropicProvider, error) {
	if cfg.APIKey == "" {
		return nil, &ConfigError{Provider: ProviderAnthropic, Field: "api_key", Message: "api_key is required"}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = anthropicDefaultURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel(ProviderAnthropic)
	}

	return &AnthropicProvider{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: cfg.timeout()},
	}, nil
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature float64            `json:"temperature"`
	MaxTokens   int                `json:"max_tokens"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate performs one round trip against /messages. The API has no native
// JSON mode; JSONMode strengthens the system prompt instead.
func (p *AnthropicProvider) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = anthropicDefaultMaxTokens
	}
	system := req.System
	if req.JSONMode {
		system += "\n\nRespond with a single valid JSON object and nothing else."
	}

	body := anthropicRequest{
		Model:       model,
		System:      system,
		Messages:    []anthropicMessage{{Role: "user", Content: req.Prompt}},
		Temperature: req.Temperature,
		MaxTokens:   maxTokens,
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/messages", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", p.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", classifyTransportError(ProviderAnthropic, "generate", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classifyTransportError(ProviderAnthropic, "generate", err)
	}

	var out anthropicResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return "", &ResponseError{Provider: ProviderAnthropic, StatusCode: resp.StatusCode, Message: fmt.Sprintf("malformed response body: %v", err)}
	}
	if resp.StatusCode != http.StatusOK {
		msg := truncateBody(payload)
		if out.Error != nil {
			msg = out.Error.Message
		}
		return "", &ResponseError{Provider: ProviderAnthropic, StatusCode: resp.StatusCode, Message: msg}
	}

	for _, block := range out.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", &ResponseError{Provider: ProviderAnthropic, Message: "no text content in response"}
}

// CheckHealth probes the models endpoint with the configured credential.
func (p *AnthropicProvider) CheckHealth(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/models", nil)
	if err != nil {
		return false
	}
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode == http.StatusOK
}

// ListModels returns the statically declared model list.
func (p *AnthropicProvider) ListModels(ctx context.Context) []string {
	return declaredModels(ProviderAnthropic)
}

// Close releases idle connections. Safe to call multiple times.
func (p *AnthropicProvider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

// Name returns the registry name of this provider.
func (p *AnthropicProvider) Name() string {
	return ProviderAnthropic
}
