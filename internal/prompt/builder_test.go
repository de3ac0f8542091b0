package prompt

import (
	"strings"
	"testing"

	"github.com/vox-sh/vox/internal/llm"
)

func TestBuild_MessageSequence(t *testing.T) {
	b := NewBuilder()
	req := llm.Request{
		UserText:  "list files sorted by size",
		OSName:    "Linux",
		ShellName: "bash",
		CWD:       "/home/user/projects",
	}

	messages, err := b.Build(req)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(messages) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(messages))
	}

	if messages[0].Role != llm.RoleSystem {
		t.Errorf("Expected first message role %q, got %q", llm.RoleSystem, messages[0].Role)
	}
	if !strings.Contains(messages[0].Content, "shell command") {
		t.Errorf("Instruction message should establish the role, got: %s", messages[0].Content)
	}

	if messages[1].Role != llm.RoleSystem {
		t.Errorf("Expected second message role %q, got %q", llm.RoleSystem, messages[1].Role)
	}
	for _, field := range []string{"Linux", "bash", "/home/user/projects"} {
		if !strings.Contains(messages[1].Content, field) {
			t.Errorf("Context message missing %q, got: %s", field, messages[1].Content)
		}
	}

	if messages[2].Role != llm.RoleUser {
		t.Errorf("Expected third message role %q, got %q", llm.RoleUser, messages[2].Role)
	}
}

func TestBuild_UserTextVerbatim(t *testing.T) {
	testCases := []struct {
		name     string
		userText string
	}{
		{"Plain request", "delete all log files"},
		{"Request with quotes", `rename "my file.txt" to something sane`},
		{"Request with template syntax", "print {{.Name}} literally"},
		{"Request with newline", "first line\nsecond line"},
	}

	b := NewBuilder()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			messages, err := b.Build(llm.Request{UserText: tc.userText, OSName: "macOS", ShellName: "zsh", CWD: "/tmp"})
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			last := messages[len(messages)-1]
			if last.Content != tc.userText {
				t.Errorf("User text not verbatim.\nExpected: %q\nGot:      %q", tc.userText, last.Content)
			}
		})
	}
}

func TestBuild_Deterministic(t *testing.T) {
	b := NewBuilder()
	req := llm.Request{UserText: "show disk usage", OSName: "Linux", ShellName: "fish", CWD: "/var"}

	first, err := b.Build(req)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	second, err := b.Build(req)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("Message count differs between runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Message %d differs between identical builds:\n%+v\n%+v", i, first[i], second[i])
		}
	}
}
