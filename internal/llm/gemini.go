package llm

import (
	"context"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GeminiProvider talks to Google Gemini through the official SDK.
type GeminiProvider struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiProvider constructs the Gemini provider. A non-empty API key is
// mandatory; constructing without one fails immediately.
func NewGeminiProvider(ctx context.Context, cfg Config) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, &ConfigError{Provider: ProviderGemini, Field: "api_key", Message: "api_key is required"}
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, &ConfigError{Provider: ProviderGemini, Field: "api_key", Message: err.Error()}
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel(ProviderGemini)
	}

	return &GeminiProvider{
		client:  client,
		model:   model,
		timeout: cfg.timeout(),
	}, nil
}

// Generate performs one round trip through the SDK.
func (p *GeminiProvider) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	modelName := req.Model
	if modelName == "" {
		modelName = p.model
	}

	model := p.client.GenerativeModel(modelName)
	model.SetTemperature(float32(req.Temperature))
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	if req.JSONMode {
		model.ResponseMIMEType = "application/json"
	}

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	prompt := req.Prompt
	if req.System != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}
	}

	resp, err := model.GenerateContent(callCtx, genai.Text(prompt))
	if err != nil {
		return "", classifyTransportError(ProviderGemini, "generate", err)
	}

	return extractGeminiText(resp)
}

// extractGeminiText pulls the concatenated text parts out of an SDK response.
func extractGeminiText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &ResponseError{Provider: ProviderGemini, Message: "no candidates in response"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &ResponseError{Provider: ProviderGemini, Message: "no content in response"}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", &ResponseError{Provider: ProviderGemini, Message: "no text parts in response"}
	}
	return strings.Join(parts, ""), nil
}

// CheckHealth asks the API for its model listing. It never returns an error.
func (p *GeminiProvider) CheckHealth(ctx context.Context) bool {
	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	it := p.client.ListModels(callCtx)
	_, err := it.Next()
	return err == nil || err == iterator.Done
}

// ListModels queries the live model listing and falls back to the statically
// declared list.
func (p *GeminiProvider) ListModels(ctx context.Context) []string {
	static := declaredModels(ProviderGemini)

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	it := p.client.ListModels(callCtx)
	var models []string
	for {
		info, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return static
		}
		// SDK names arrive as "models/gemini-...".
		models = append(models, strings.TrimPrefix(info.Name, "models/"))
	}
	if len(models) == 0 {
		return static
	}
	return models
}

// Close releases the underlying SDK client. Safe to call multiple times.
func (p *GeminiProvider) Close() error {
	if p.client != nil {
		err := p.client.Close()
		p.client = nil
		return err
	}
	return nil
}

// Name returns the registry name of this provider.
func (p *GeminiProvider) Name() string {
	return ProviderGemini
}
