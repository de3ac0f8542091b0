// Package app wires the request-to-execution pipeline: probe environment,
// build prompt, call the completion provider, confirm with the user, and
// execute. Collaborators are injected as interfaces so the pipeline is unit
// testable without a terminal, network, or shell.
package app

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vox-sh/vox/internal/history"
	"github.com/vox-sh/vox/internal/llm"
	"github.com/vox-sh/vox/internal/prompt"
	"github.com/vox-sh/vox/internal/shell"
	"github.com/vox-sh/vox/internal/sysctx"
)

// Confirmer is the interactive yes/no checkpoint before execution. A
// cancelled context must unblock a pending prompt as a decline.
type Confirmer interface {
	Confirm(ctx context.Context, command string) (bool, error)
}

// Recorder persists completed invocations. Optional.
type Recorder interface {
	Append(entry history.Entry) error
}

// Outcome is the pipeline's result, surfaced as the process exit code.
type Outcome struct {
	ExitCode int
	Ran      bool
	Command  string
}

// Pipeline holds one invocation's collaborators.
type Pipeline struct {
	Probe    func() sysctx.Context
	Builder  *prompt.Builder
	Provider llm.Provider
	Gate     Confirmer
	Runner   shell.Runner
	History  Recorder
	Log      *logrus.Entry

	// HandoffPath, when non-empty, is the shell wrapper's command file:
	// approved commands are written there for the parent shell to eval
	// instead of being executed in a child process.
	HandoffPath string
}

// Run walks the pipeline for one user request. Declining the confirmation
// is not an error: the outcome is exit 0 with Ran=false. Every failure is
// terminal and carries its kind; nothing is retried.
func (p *Pipeline) Run(ctx context.Context, userText string) (Outcome, error) {
	env := p.Probe()
	p.Log.WithFields(logrus.Fields{
		"os":    env.OS,
		"shell": env.Shell,
		"cwd":   env.CWD,
	}).Debug("context gathered")

	req := llm.Request{
		UserText:  userText,
		OSName:    env.OS,
		ShellName: env.Shell,
		CWD:       env.CWD,
	}

	messages, err := p.Builder.Build(req)
	if err != nil {
		return Outcome{ExitCode: 1}, err
	}

	start := time.Now()
	command, err := p.Provider.GenerateCommand(ctx, messages)
	if err != nil {
		p.Log.WithError(err).Error("completion failed")
		return Outcome{ExitCode: llm.ExitCodeFor(err)}, err
	}
	p.Log.WithFields(logrus.Fields{
		"provider": p.Provider.Name(),
		"latency":  time.Since(start).String(),
		"command":  command,
	}).Info("command received")

	approved, err := p.Gate.Confirm(ctx, command)
	if err != nil {
		return Outcome{ExitCode: 1, Command: command}, err
	}
	if !approved {
		p.Log.Info("declined")
		p.record(userText, command, false, 0)
		return Outcome{ExitCode: 0, Ran: false, Command: command}, nil
	}

	if p.HandoffPath != "" {
		if err := shell.WriteCommandFile(p.HandoffPath, command); err == nil {
			p.Log.WithField("cmd_file", p.HandoffPath).Debug("handed off to shell wrapper")
			p.record(userText, command, true, 0)
			return Outcome{ExitCode: 0, Ran: false, Command: command}, nil
		}
		// Handoff file not writable; run directly instead of dropping the command.
		p.Log.Warn("wrapper handoff failed, executing directly")
	}

	exitCode, err := p.Runner.Run(ctx, command)
	if err != nil {
		p.Log.WithError(err).Error("execution failed")
		return Outcome{ExitCode: llm.ExitCodeFor(err), Command: command}, err
	}

	p.Log.WithField("exit_code", exitCode).Info("executed")
	p.record(userText, command, true, exitCode)
	return Outcome{ExitCode: exitCode, Ran: true, Command: command}, nil
}

func (p *Pipeline) record(request, command string, approved bool, exitCode int) {
	if p.History == nil {
		return
	}
	if err := p.History.Append(history.NewEntry(request, command, approved, exitCode)); err != nil {
		p.Log.WithError(err).Warn("failed to record history")
	}
}
