// Package gradient implements the llm.Provider interface against the
// DigitalOcean Gradient serverless inference endpoint.
package gradient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/vox-sh/vox/internal/config"
	"github.com/vox-sh/vox/internal/llm"
)

// Gradient speaks the OpenAI chat-completion dialect.
type chatCompletionRequest struct {
	Model       string            `json:"model"`
	Messages    []llm.ChatMessage `json:"messages"`
	Temperature float64           `json:"temperature"`
	MaxTokens   int               `json:"max_tokens"`
	Stream      bool              `json:"stream"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
}

// Provider is the DigitalOcean Gradient completion client.
type Provider struct {
	cfg    *config.Config
	client *http.Client
}

// NewProvider creates a Gradient provider from the loaded configuration.
func NewProvider(cfg *config.Config) (llm.Provider, error) {
	return &Provider{
		cfg:    cfg,
		client: &http.Client{Timeout: config.DefaultHTTPTimeout},
	}, nil
}

func init() {
	llm.RegisterProvider(config.ProviderGradient, NewProvider)
}

// Name implements the llm.Provider interface.
func (p *Provider) Name() string { return config.ProviderGradient }

// GenerateCommand implements the llm.Provider interface.
func (p *Provider) GenerateCommand(ctx context.Context, messages []llm.ChatMessage) (string, error) {
	reqBody := chatCompletionRequest{
		Model:       p.cfg.Model,
		Messages:    messages,
		Temperature: config.CompletionTemperature,
		MaxTokens:   config.MaxCompletionTokens,
		Stream:      false,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", llm.NewPipelineError(llm.ParseError, "failed to encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.EndpointURL(), bytes.NewReader(jsonBody))
	if err != nil {
		return "", llm.NewPipelineError(llm.NetworkError, "failed to create request", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", llm.ClassifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", llm.NewPipelineError(llm.NetworkError, "failed to read response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", llm.NewPipelineError(llm.ProviderError, p.statusMessage(resp.StatusCode, body), nil)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", llm.NewPipelineError(llm.ParseError, "unexpected response format from API", err)
	}
	if completion.Error != nil {
		return "", llm.NewPipelineError(llm.ProviderError, "API error: "+completion.Error.Message, nil)
	}
	if len(completion.Choices) == 0 {
		return "", llm.NewPipelineError(llm.ParseError, "response contained no choices", nil)
	}

	command := llm.CleanCommandText(completion.Choices[0].Message.Content)
	if command == "" {
		return "", llm.NewPipelineError(llm.EmptyResponseError, "empty response from API, try rephrasing your request", nil)
	}
	return command, nil
}

// statusMessage builds a short diagnostic for a non-200 status. Gradient
// answers 401 both for bad keys and for models outside the subscription
// tier; the error message is the only way to tell them apart.
func (p *Provider) statusMessage(status int, body []byte) string {
	var payload struct {
		Error apiError `json:"error"`
	}
	_ = json.Unmarshal(body, &payload)
	detail := strings.ToLower(payload.Error.Message)

	switch status {
	case http.StatusUnauthorized:
		if strings.Contains(detail, "model") && strings.Contains(detail, "tier") {
			return fmt.Sprintf("model %q is not available on your subscription tier", p.cfg.Model)
		}
		return "invalid API key, run 'vox --setup' to reconfigure"
	case http.StatusTooManyRequests:
		return "rate limited, wait a moment and try again"
	default:
		if payload.Error.Message != "" {
			return fmt.Sprintf("API returned HTTP %d: %s", status, payload.Error.Message)
		}
		return fmt.Sprintf("API returned HTTP %d", status)
	}
}
