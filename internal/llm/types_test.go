package llm

import (
	"context"
	"testing"

	"github.com/vox-sh/vox/internal/config"
)

func TestCleanCommandText(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"Bare command", "ls -la", "ls -la"},
		{"Surrounding whitespace", "  ls -la \n", "ls -la"},
		{"Inline backticks", "`ls -la`", "ls -la"},
		{"Fenced block", "```\nls -la\n```", "ls -la"},
		{"Fenced block with language", "```bash\nls -la\n```", "ls -la"},
		{"Fenced block with sh hint", "```sh\necho hi\n```", "echo hi"},
		{"Single-line fence", "```ls -la```", "ls -la"},
		{"Command starting like a hint", "```\nshutdown -h now\n```", "shutdown -h now"},
		{"Empty", "", ""},
		{"Whitespace only", "   \n\t ", ""},
		{"Fence with nothing inside", "```\n```", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := CleanCommandText(tc.input)
			if got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestGetProvider_Unknown(t *testing.T) {
	_, err := GetProvider("no-such-provider", nil)
	if err == nil {
		t.Fatal("Expected error for unknown provider, got nil")
	}
}

type stubProvider struct{}

func (s *stubProvider) Name() string { return "stub" }
func (s *stubProvider) GenerateCommand(_ context.Context, _ []ChatMessage) (string, error) {
	return "true", nil
}

func TestRegisterAndGetProvider(t *testing.T) {
	RegisterProvider("stub", func(_ *config.Config) (Provider, error) {
		return &stubProvider{}, nil
	})

	p, err := GetProvider("stub", &config.Config{})
	if err != nil {
		t.Fatalf("GetProvider failed: %v", err)
	}
	if p.Name() != "stub" {
		t.Errorf("Expected provider name 'stub', got %q", p.Name())
	}
}
