package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/vox-sh/vox/internal/app"
	"github.com/vox-sh/vox/internal/config"
	"github.com/vox-sh/vox/internal/history"
	"github.com/vox-sh/vox/internal/llm"
	_ "github.com/vox-sh/vox/internal/llm/gradient"
	_ "github.com/vox-sh/vox/internal/llm/groq"
	"github.com/vox-sh/vox/internal/logging"
	"github.com/vox-sh/vox/internal/prompt"
	"github.com/vox-sh/vox/internal/shell"
	"github.com/vox-sh/vox/internal/sysctx"
	"github.com/vox-sh/vox/internal/ui"
)

// Global flags
var (
	flagSetup     bool
	flagReset     bool
	flagShellInit bool
	flagHistory   bool
	flagProvider  string
	flagDebug     bool
)

// version is injected by ldflags: -X 'main.version=vX.Y.Z'
var version string

var rootCmd = &cobra.Command{
	Use:   "vox <request...>",
	Short: "Translate natural language into shell commands",
	Long: `vox turns a natural-language request into a single shell command,
shows it to you, and runs it only after you confirm.`,
	Example: `  vox list files sorted by size
  vox "find all PDFs modified this week"
  vox --setup`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       versionString(),
	Run: func(cmd *cobra.Command, args []string) {
		switch {
		case flagSetup:
			runSetup()
		case flagReset:
			runReset()
		case flagShellInit:
			fmt.Println(shell.WrapperScript(os.Getenv("SHELL")))
		case flagHistory:
			runHistory()
		case len(args) > 0:
			runTranslate(strings.Join(args, " "))
		default:
			_ = cmd.Help()
		}
	},
}

func init() {
	rootCmd.Flags().BoolVar(&flagSetup, "setup", false, "configure provider, API key, and model")
	rootCmd.Flags().BoolVar(&flagReset, "reset", false, "remove stored configuration")
	rootCmd.Flags().BoolVar(&flagShellInit, "shell-init", false, "print the shell wrapper (add to .bashrc/.zshrc)")
	rootCmd.Flags().BoolVar(&flagHistory, "history", false, "show recently generated commands")
	rootCmd.Flags().StringVar(&flagProvider, "provider", "", "override the configured provider for this run")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(config.ExitGenericError)
	}
}

// runTranslate drives the request-to-execution pipeline for one request.
func runTranslate(userText string) {
	_ = logging.Init(flagDebug)
	log := logging.WithRun(uuid.NewString())

	cfg := loadOrSetupConfig()

	providerName := cfg.Provider
	if strings.TrimSpace(flagProvider) != "" {
		providerName = flagProvider
	}
	provider, err := llm.GetProvider(providerName, cfg)
	if err != nil {
		pterm.Error.Printfln("%v", err)
		os.Exit(config.ExitConfigError)
	}

	// Ctrl+C cancels the in-flight request or the running child promptly.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	spinner, _ := pterm.DefaultSpinner.Start("Generating command")

	pl := &app.Pipeline{
		Probe:       sysctx.Probe,
		Builder:     prompt.NewBuilder(),
		Provider:    provider,
		Gate:        &spinnerGate{gate: ui.NewGate(), spinner: spinner},
		Runner:      shell.NewExecRunner(),
		History:     historyStore(),
		Log:         log,
		HandoffPath: shell.CommandFilePath(),
	}

	outcome, err := pl.Run(ctx, userText)
	if err != nil {
		stopSpinner(spinner, false)
		if ctx.Err() != nil {
			os.Exit(config.ExitUserCancel)
		}
		ui.PresentError(err)
		os.Exit(llm.ExitCodeFor(err))
	}

	stopSpinner(spinner, true)
	if ctx.Err() != nil {
		os.Exit(config.ExitUserCancel)
	}
	os.Exit(outcome.ExitCode)
}

// spinnerGate stops the loading spinner right before showing the command.
type spinnerGate struct {
	gate    *ui.Gate
	spinner *pterm.SpinnerPrinter
}

func (g *spinnerGate) Confirm(ctx context.Context, command string) (bool, error) {
	stopSpinner(g.spinner, true)
	return g.gate.Confirm(ctx, command)
}

func stopSpinner(spinner *pterm.SpinnerPrinter, ok bool) {
	if spinner == nil || !spinner.IsActive {
		return
	}
	if ok {
		_ = spinner.Stop()
	} else {
		spinner.Fail("Generation failed")
	}
}

// loadOrSetupConfig loads the stored config, launching first-run setup when
// it is missing or unusable.
func loadOrSetupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			pterm.Error.Printfln("Failed to load configuration: %v", err)
			os.Exit(config.ExitConfigError)
		}
		pterm.Println(pterm.Yellow("First-time setup required."))
		pterm.Println()
		runSetup()
		cfg, err = config.Load()
		if err != nil {
			pterm.Error.Println("Setup incomplete.")
			os.Exit(config.ExitConfigError)
		}
	}

	if err := cfg.Validate(); err != nil {
		pterm.Error.Printfln("Configuration problem: %v", err)
		os.Exit(config.ExitConfigError)
	}
	return cfg
}

func historyStore() app.Recorder {
	store, err := history.NewStore()
	if err != nil {
		return nil
	}
	return store
}

func runReset() {
	removed, err := config.Reset()
	if err != nil {
		pterm.Error.Printfln("Failed to reset configuration: %v", err)
		os.Exit(config.ExitConfigError)
	}
	if removed {
		pterm.Success.Println("Configuration reset. Run 'vox --setup' to reconfigure.")
	} else {
		pterm.Println(pterm.Gray("No configuration found."))
	}
}

func runHistory() {
	store, err := history.NewStore()
	if err != nil {
		pterm.Error.Printfln("Failed to open history: %v", err)
		os.Exit(config.ExitGenericError)
	}
	entries, err := store.Recent(20)
	if err != nil {
		pterm.Error.Printfln("Failed to read history: %v", err)
		os.Exit(config.ExitGenericError)
	}
	if len(entries) == 0 {
		pterm.Println(pterm.Gray("No history yet."))
		return
	}

	for _, e := range entries {
		status := pterm.Gray("declined")
		if e.Approved {
			if e.ExitCode == 0 {
				status = pterm.Green("ok")
			} else {
				status = pterm.Red(fmt.Sprintf("exit %d", e.ExitCode))
			}
		}
		pterm.Printfln("%s  %-8s %s", e.Timestamp.Format("2006-01-02 15:04"), status, e.Command)
	}
}

func versionString() string {
	if strings.TrimSpace(version) == "" {
		return "v0.1.0"
	}
	return version
}
