package ui

import (
	"github.com/pterm/pterm"

	"github.com/vox-sh/vox/internal/llm"
)

// suggestionsByKind gives the user something actionable per failure kind.
var suggestionsByKind = map[llm.ErrorKind][]string{
	llm.NetworkError: {
		"Check your internet connection",
		"Try again in a moment",
	},
	llm.ProviderError: {
		"Verify your API key with 'vox --setup'",
		"Check the provider's status page",
	},
	llm.ParseError: {
		"Try again; the provider may have returned a transient malformed response",
	},
	llm.EmptyResponseError: {
		"Rephrase your request to be more specific",
	},
	llm.ExecutionError: {
		"Make sure your shell interpreter is installed and on PATH",
	},
}

// PresentError prints a short, human-readable diagnostic for a pipeline
// failure. Every error names its kind; nothing is silently swallowed.
func PresentError(err error) {
	if err == nil {
		return
	}

	kind := llm.KindOf(err)
	if kind == "" {
		pterm.Error.Printfln("%v", err)
		return
	}

	pterm.Error.Printfln("%v", err)
	if suggestions, ok := suggestionsByKind[kind]; ok {
		for _, s := range suggestions {
			pterm.Println(pterm.Gray("  • " + s))
		}
	}
}
