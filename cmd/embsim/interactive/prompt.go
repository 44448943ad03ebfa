package interactive

import (
	"errors"
	"fmt"
	"io"

	"github.com/chzyer/readline"

	"github.com/JosephJonathanFernandes/embedded-menu/pkg/sim"
)

// ErrInterrupted is returned when the user presses Ctrl-C at a prompt.
var ErrInterrupted = errors.New("interrupted")

// ReadlinePrompter reads console input through readline.
type ReadlinePrompter struct {
	rl *readline.Instance
}

// NewReadlinePrompter creates a prompter bound to the process terminal.
func NewReadlinePrompter() (*ReadlinePrompter, error) {
	rl, err := readline.NewEx(&readline.Config{
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &ReadlinePrompter{rl: rl}, nil
}

// Prompt shows prompt and reads a line.
func (p *ReadlinePrompter) Prompt(prompt string) (string, error) {
	p.rl.SetPrompt(prompt)
	line, err := p.rl.Readline()
	if err != nil {
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			return "", ErrInterrupted
		case errors.Is(err, io.EOF):
			return "", sim.ErrInputClosed
		default:
			return "", fmt.Errorf("read input: %w", err)
		}
	}
	return line, nil
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for console output to avoid interfering with the prompt.
func (p *ReadlinePrompter) Stdout() io.Writer {
	return p.rl.Stdout()
}

// Stderr returns a writer that properly coordinates with the readline input.
func (p *ReadlinePrompter) Stderr() io.Writer {
	return p.rl.Stderr()
}

// Close restores the terminal.
func (p *ReadlinePrompter) Close() error {
	return p.rl.Close()
}

// Compile-time interface satisfaction check.
var _ sim.Prompter = (*ReadlinePrompter)(nil)
