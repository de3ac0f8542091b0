package shell

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"runtime"

	"github.com/vox-sh/vox/internal/llm"
)

// Runner executes an approved command string and reports its exit code.
type Runner interface {
	Run(ctx context.Context, command string) (int, error)
}

// ExecRunner spawns the command through the user's shell interpreter so it
// supports the syntax the model was asked to target (pipes, globs,
// redirection). Stdio is inherited, so the experience matches typing the
// command manually.
type ExecRunner struct {
	interpreter string
	flag        string
}

// NewExecRunner picks the interpreter from $SHELL with a platform fallback.
func NewExecRunner() *ExecRunner {
	if runtime.GOOS == "windows" {
		interpreter := os.Getenv("COMSPEC")
		if interpreter == "" {
			interpreter = "cmd"
		}
		return &ExecRunner{interpreter: interpreter, flag: "/C"}
	}

	interpreter := os.Getenv("SHELL")
	if interpreter == "" {
		interpreter = "sh"
	}
	return &ExecRunner{interpreter: interpreter, flag: "-c"}
}

// Run implements the Runner interface. The child's exit status is returned
// unmodified; a command that ran and failed is not an error here. Only a
// spawn failure (interpreter missing) is an ExecutionError.
func (r *ExecRunner) Run(ctx context.Context, command string) (int, error) {
	cmd := exec.CommandContext(ctx, r.interpreter, r.flag, command)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, llm.NewPipelineError(llm.ExecutionError, "failed to run command interpreter "+r.interpreter, err)
}
