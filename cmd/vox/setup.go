package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"golang.org/x/term"

	"github.com/vox-sh/vox/internal/config"
)

// runSetup walks the user through provider, API key, and model selection,
// preserving existing values where input is left empty.
func runSetup() {
	pterm.DefaultHeader.Println("Vox Setup")
	if path, err := config.GetConfigPath(); err == nil {
		pterm.Println(pterm.Gray("Config stored in " + path))
	}
	pterm.Println()

	// Keep existing values so re-running setup only changes what the user
	// touches.
	cfg := &config.Config{}
	if existing, err := config.Load(); err == nil {
		cfg = existing
	}

	// One reader for the whole session: wrapping stdin anew per prompt
	// would discard lines already buffered by the previous prompt.
	in := bufio.NewReader(os.Stdin)

	cfg.Provider = pickProvider(in, cfg.Provider)

	key, err := readAPIKey(in, cfg.APIKey)
	if err != nil {
		pterm.Println()
		pterm.Println(pterm.Gray("Setup cancelled."))
		os.Exit(config.ExitUserCancel)
	}
	if key != "" {
		cfg.APIKey = key
	}
	if cfg.APIKey == "" {
		pterm.Error.Println("API key cannot be empty.")
		os.Exit(config.ExitConfigError)
	}

	cfg.Model = pickModel(in, cfg.Provider, cfg.Model)

	if err := cfg.Save(); err != nil {
		pterm.Error.Printfln("Failed to save configuration: %v", err)
		os.Exit(config.ExitConfigError)
	}
	pterm.Println()
	pterm.Success.Println("Saved. Run 'vox <request>' to get started.")
}

// pickProvider selects the completion provider.
func pickProvider(in *bufio.Reader, current string) string {
	options := []string{config.ProviderGroq, config.ProviderGradient}

	if !isInteractiveTTY() {
		return promptLine(in, fmt.Sprintf("Provider [%s/%s]", config.ProviderGroq, config.ProviderGradient), defaultOr(current, config.ProviderGradient))
	}

	defaultOption := current
	if defaultOption == "" {
		defaultOption = config.ProviderGradient
	}
	selected, err := pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithDefaultOption(defaultOption).
		Show("Select a provider")
	if err != nil {
		return defaultOption
	}
	return selected
}

// readAPIKey prompts for the key without echoing it. Empty input keeps the
// current key.
func readAPIKey(in *bufio.Reader, current string) (string, error) {
	if current != "" {
		pterm.Println(pterm.Gray("Current key: " + maskKey(current)))
	}

	if !isInteractiveTTY() {
		return promptLine(in, "Enter API key (or press Enter to keep current)", ""), nil
	}

	pterm.Print("Enter API key (or press Enter to keep current): ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	pterm.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

// pickModel selects a model from the provider's catalog, lightest first.
func pickModel(in *bufio.Reader, provider, current string) string {
	catalog := config.ModelsFor(provider)
	fallback := defaultOr(current, config.DefaultModelFor(provider))

	if !isInteractiveTTY() {
		return promptLine(in, "Model", fallback)
	}

	labels := make([]string, len(catalog))
	byLabel := make(map[string]string, len(catalog))
	defaultLabel := ""
	for i, m := range catalog {
		label := fmt.Sprintf("%s (%s)", m.Name, m.Description)
		labels[i] = label
		byLabel[label] = m.ID
		if m.ID == fallback {
			defaultLabel = label
		}
	}

	selector := pterm.DefaultInteractiveSelect.WithOptions(labels)
	if defaultLabel != "" {
		selector = selector.WithDefaultOption(defaultLabel)
	}
	selected, err := selector.Show("Select a model (lightest to heaviest)")
	if err != nil {
		return fallback
	}
	if id, ok := byLabel[selected]; ok {
		return id
	}
	return fallback
}

// promptLine is the plain-text fallback used when stdin is not a terminal.
// It reads from the shared session reader so consecutive prompts never lose
// lines the previous read buffered.
func promptLine(in *bufio.Reader, label, fallback string) string {
	if fallback != "" {
		fmt.Printf("%s [%s]: ", label, fallback)
	} else {
		fmt.Printf("%s: ", label)
	}
	line, err := in.ReadString('\n')
	if err != nil {
		return fallback
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback
	}
	return line
}

func maskKey(key string) string {
	if len(key) <= 12 {
		return strings.Repeat("*", len(key))
	}
	return key[:8] + "..." + key[len(key)-4:]
}

func defaultOr(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func isInteractiveTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
