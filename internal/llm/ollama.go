package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

const (
	ollamaLocalURL     = "http://localhost:11434"
	ollamaContainerURL = "http://host.docker.internal:11434"
)

// OllamaProvider talks to a local Ollama model server. No credential is
// required; the endpoint is auto-detected unless overridden.
type OllamaProvider struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaProvider constructs the local-model provider. The base URL is
// taken from cfg, then from OLLAMA_BASE_URL, then auto-detected: inside a
// container the host's server is reached via host.docker.internal.
func NewOllamaProvider(cfg Config) (*OllamaProvider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = os.Getenv("OLLAMA_BASE_URL")
	}
	if baseURL == "" {
		baseURL = detectOllamaURL()
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel(ProviderOllama)
	}

	return &OllamaProvider{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: cfg.timeout()},
	}, nil
}

// detectOllamaURL picks the default endpoint: an OLLAMA_HOST value when the
// standard Ollama env var is set, otherwise based on whether the process runs
// containerized.
func detectOllamaURL() string {
	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
			host = "http://" + host
		}
		return host
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return ollamaContainerURL
	}
	return ollamaLocalURL
}

type ollamaGenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	System  string         `json:"system,omitempty"`
	Stream  bool           `json:"stream"`
	Format  string         `json:"format,omitempty"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// Generate performs one non-streaming round trip against /api/generate.
func (p *OllamaProvider) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}

	options := map[string]any{"temperature": req.Temperature}
	if req.MaxTokens > 0 {
		options["num_predict"] = req.MaxTokens
	}
	for k, v := range req.Options {
		options[k] = v
	}

	body := ollamaGenerateRequest{
		Model:   model,
		Prompt:  req.Prompt,
		System:  req.System,
		Stream:  false,
		Options: options,
	}
	if req.JSONMode {
		body.Format = "json"
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/generate", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", classifyTransportError(ProviderOllama, "generate", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classifyTransportError(ProviderOllama, "generate", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &ResponseError{Provider: ProviderOllama, StatusCode: resp.StatusCode, Message: truncateBody(payload)}
	}

	var out ollamaGenerateResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return "", &ResponseError{Provider: ProviderOllama, Message: fmt.Sprintf("malformed response body: %v", err)}
	}
	if out.Error != "" {
		return "", &ResponseError{Provider: ProviderOllama, Message: out.Error}
	}
	return out.Response, nil
}

// CheckHealth probes /api/tags. It never returns an error.
func (p *OllamaProvider) CheckHealth(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode == http.StatusOK
}

// ListModels queries the server for installed models and falls back to the
// statically declared list. It never returns an empty list.
func (p *OllamaProvider) ListModels(ctx context.Context) []string {
	static := declaredModels(ProviderOllama)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/tags", nil)
	if err != nil {
		return static
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return static
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return static
	}

	var tags struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return static
	}

	models := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		if m.Name != "" {
			models = append(models, m.Name)
		}
	}
	if len(models) == 0 {
		return static
	}
	return models
}

// Close releases idle connections. Safe to call multiple times.
func (p *OllamaProvider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

// Name returns the registry name of this provider.
func (p *OllamaProvider) Name() string {
	return ProviderOllama
}

// classifyTransportError wraps a client error in a TransportError,
// distinguishing timeouts from other network faults.
func classifyTransportError(provider, op string, err error) *TransportError {
	timeout := errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err)
	var netErr interface{ Timeout() bool }
	if !timeout && errors.As(err, &netErr) {
		timeout = netErr.Timeout()
	}
	return &TransportError{Provider: provider, Op: op, Timeout: timeout, Cause: err}
}

// truncateBody shortens an error body for inclusion in an error message.
func truncateBody(body []byte) string {
	const maxLen = 200
	s := string(body)
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}
