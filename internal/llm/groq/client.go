// Package groq implements the llm.Provider interface against the Groq
// OpenAI-compatible chat-completion endpoint.
package groq

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

// Groq API structures
type chatCompletionRequest struct {
	Model       string            `json:"model"`
	Messages    []llm.ChatMessage `json:"messages"`
	Temperature float64           `json:"temperature"`
	MaxTokens   int               `json:"max_tokens"`
	// Some OpenAI-compatible backends default to streaming when the field
	// is omitted; force a single JSON response.
	Stream bool `json:"stream"`
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
	Type    string `json:"type"`
}

// Provider is the Groq completion client.
type Provider struct {
	cfg    *config.Config
	client *http.Client
}

// NewProvider creates a Groq provider from the loaded configuration.
func NewProvider(cfg *config.Config) (llm.Provider, error) {
	return &Provider{
		cfg:    cfg,
		client: &http.Client{Timeout: config.DefaultHTTPTimeout},
	}, nil
}

func init() {
	llm.RegisterProvider(config.ProviderGroq, NewProvider)
}

// Name implements the llm.Provider interface.
func (p *Provider) Name() string { return config.ProviderGroq }

// GenerateCommand implements the llm.Provider interface. It performs one
// POST to the chat-completion endpoint; there is no automatic retry.
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
		return "", llm.NewPipelineError(llm.ProviderError, statusMessage(resp.StatusCode, body), nil)
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

// statusMessage builds a short diagnostic for a non-200 status.
func statusMessage(status int, body []byte) string {
	detail := extractErrorMessage(body)
	switch status {
	case http.StatusUnauthorized:
		if detail == "" {
			detail = "invalid API key, run 'vox --setup' to reconfigure"
		}
		return fmt.Sprintf("API returned HTTP 401: %s", detail)
	case http.StatusTooManyRequests:
		return "rate limited, wait a moment and try again"
	default:
		if detail != "" {
			return fmt.Sprintf("API returned HTTP %d: %s", status, detail)
		}
		return fmt.Sprintf("API returned HTTP %d", status)
	}
}

// extractErrorMessage pulls error.message out of an error payload, if any.
func extractErrorMessage(body []byte) string {
	var payload struct {
		Error apiError `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Error.Message)
}
