package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
)

// Gate is the interactive yes/no checkpoint before any command executes.
// It prints the generated command in a distinct block and reads one line
// from its input. Empty input approves (default-yes); input starting with
// n/N declines; anything else re-prompts.
type Gate struct {
	in  *bufio.Reader
	out io.Writer
}

// NewGate creates a Gate bound to the process terminal.
func NewGate() *Gate {
	return NewGateWithIO(os.Stdin, os.Stdout)
}

// NewGateWithIO creates a Gate with explicit streams so tests can script
// the answer instead of reading a real terminal.
func NewGateWithIO(in io.Reader, out io.Writer) *Gate {
	return &Gate{in: bufio.NewReader(in), out: out}
}

type readResult struct {
	line string
	err  error
}

// Confirm shows the command and waits for approval. EOF or an input error
// counts as a decline, not a failure; declining is never an error. A
// cancelled context (interrupt while the prompt is waiting) also declines,
// so the caller is never stuck behind a blocked terminal read.
func (g *Gate) Confirm(ctx context.Context, command string) (bool, error) {
	fmt.Fprintln(g.out)
	fmt.Fprintf(g.out, "  %s\n", pterm.LightGreen(command))
	fmt.Fprintln(g.out)

	// The terminal read has no cancellation of its own; run it in a
	// goroutine so an interrupt can unblock the prompt. The goroutine is
	// abandoned on cancellation, which is fine for a one-shot CLI.
	lines := make(chan readResult, 1)
	go func() {
		for {
			line, err := g.in.ReadString('\n')
			lines <- readResult{line: line, err: err}
			if err != nil {
				return
			}
		}
	}()

	for {
		fmt.Fprint(g.out, pterm.Gray("  Run? (Y/n): "))

		select {
		case <-ctx.Done():
			fmt.Fprintln(g.out)
			return false, nil
		case res := <-lines:
			if res.err != nil {
				if errors.Is(res.err, io.EOF) {
					fmt.Fprintln(g.out)
					return false, nil
				}
				return false, fmt.Errorf("error reading confirmation input: %w", res.err)
			}

			answer := strings.ToLower(strings.TrimSpace(res.line))
			switch {
			case answer == "" || strings.HasPrefix(answer, "y"):
				return true, nil
			case strings.HasPrefix(answer, "n"):
				return false, nil
			}
			// Unrecognized input re-prompts.
		}
	}
}
