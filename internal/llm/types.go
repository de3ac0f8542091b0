package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/vox-sh/vox/internal/config"
)

// ChatMessage is one role/content pair in a chat-completion conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Message roles recognized by the chat-completion APIs.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Request carries one invocation's user text plus the probed environment.
// Created per run, immutable, discarded when the pipeline completes.
type Request struct {
	UserText  string
	OSName    string
	ShellName string
	CWD       string
}

// Provider turns an assembled message sequence into a single shell command.
// Implementations own their wire format: building the provider-specific
// request body and parsing the provider-specific response shape.
type Provider interface {
	// Name returns the provider identifier (e.g. "groq").
	Name() string

	// GenerateCommand performs one completion call and returns the cleaned
	// command text. An empty model response is an EmptyResponseError, never
	// an empty command.
	GenerateCommand(ctx context.Context, messages []ChatMessage) (string, error)
}

// ProviderFactory creates a Provider from the loaded configuration.
type ProviderFactory func(cfg *config.Config) (Provider, error)

var providerFactories = make(map[string]ProviderFactory)

// RegisterProvider makes a provider constructor available by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providerFactories[name] = factory
}

// GetProvider creates a provider by name from the registry.
func GetProvider(name string, cfg *config.Config) (Provider, error) {
	factory, ok := providerFactories[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", name)
	}
	return factory(cfg)
}

// fenceHints are language tags models put on opening code fences.
var fenceHints = []string{"bash", "shell", "zsh", "sh", "console", "text"}

// CleanCommandText strips surrounding whitespace, markdown code fences, and
// stray backticks from model output so the result is a bare shell command.
func CleanCommandText(s string) string {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "```"); ok {
		s = rest
		lower := strings.ToLower(s)
		for _, hint := range fenceHints {
			if !strings.HasPrefix(lower, hint) {
				continue
			}
			// Only a bare tag: the hint must end the line, not start a command.
			rest := s[len(hint):]
			if rest == "" || rest[0] == '\n' || rest[0] == '\r' {
				s = rest
				break
			}
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "`"))
}
