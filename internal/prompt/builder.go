// Package prompt assembles the chat-completion message sequence for one
// translation request. Building is deterministic and does no I/O.
package prompt

import (
	"bytes"
	"text/template"

	"github.com/vox-sh/vox/internal/llm"
)

// instructionText establishes the assistant's role. The model is asked for
// exactly one command so the result can be executed verbatim.
const instructionText = "You are a shell command generator. " +
	"Output ONLY the exact shell command for the user's request. " +
	"No explanations, no markdown, no code blocks. " +
	"If multiple steps are needed, chain them with && or ;."

// contextTemplate renders the probed environment into the second message.
const contextTemplate = `Target environment:
OS: {{.OSName}}
Shell: {{.ShellName}}
Current directory: {{.CWD}}`

// Builder produces the ordered message sequence expected by the
// chat-completion APIs.
type Builder struct {
	contextTpl *template.Template
}

// NewBuilder creates a Builder with the built-in templates.
func NewBuilder() *Builder {
	return &Builder{
		contextTpl: template.Must(template.New("context").Parse(contextTemplate)),
	}
}

// Build returns three messages: the role instruction, the environment
// context, and the verbatim user text.
func (b *Builder) Build(req llm.Request) ([]llm.ChatMessage, error) {
	var ctxBuf bytes.Buffer
	if err := b.contextTpl.Execute(&ctxBuf, req); err != nil {
		return nil, err
	}

	return []llm.ChatMessage{
		{Role: llm.RoleSystem, Content: instructionText},
		{Role: llm.RoleSystem, Content: ctxBuf.String()},
		{Role: llm.RoleUser, Content: req.UserText},
	}, nil
}
