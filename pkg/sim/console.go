package sim

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/JosephJonathanFernandes/embedded-menu/pkg/log"
)

// ErrInputClosed is returned by prompters when input has ended.
var ErrInputClosed = errors.New("input closed")

// Prompter shows a prompt and reads one line of input.
// The returned line has its trailing newline removed.
type Prompter interface {
	Prompt(prompt string) (string, error)
}

// Options configures a Console.
type Options struct {
	// SkipPauses turns every simulated delay into a no-op.
	SkipPauses bool

	// Tracer receives trace events. Nil disables tracing.
	Tracer log.Logger

	// RunID is stamped on every trace event.
	RunID string

	// Styles overrides the styles derived from the output writer. Set it
	// when the writer wraps a terminal it does not expose, as readline's
	// does.
	Styles *Styles
}

// Console is the environment a scenario runs in.
type Console struct {
	out    io.Writer
	in     Prompter
	sleep  func(time.Duration)
	tracer log.Logger
	runID  string
	styles Styles
}

// NewConsole creates a console writing to out and reading from in.
func NewConsole(out io.Writer, in Prompter, opts Options) *Console {
	c := &Console{
		out:    out,
		in:     in,
		sleep:  time.Sleep,
		tracer: opts.Tracer,
		runID:  opts.RunID,
		styles: NewStyles(out),
	}
	if opts.Styles != nil {
		c.styles = *opts.Styles
	}
	if opts.SkipPauses {
		c.sleep = nil
	}
	if c.tracer == nil {
		c.tracer = log.NoopLogger{}
	}
	return c
}

// WithoutPauses returns a copy of c whose pauses are no-ops.
func (c *Console) WithoutPauses() *Console {
	cp := *c
	cp.sleep = nil
	return &cp
}

// PausesEnabled reports whether simulated delays actually sleep.
func (c *Console) PausesEnabled() bool {
	return c.sleep != nil
}

// Out returns the console output writer.
func (c *Console) Out() io.Writer {
	return c.out
}

// Styles returns the output styles bound to the console writer.
func (c *Console) Styles() Styles {
	return c.styles
}

// Printf writes formatted output to the console.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// Println writes a line to the console.
func (c *Console) Println(args ...any) {
	fmt.Fprintln(c.out, args...)
}

// ReadLine shows prompt and reads one line.
func (c *Console) ReadLine(prompt string) (string, error) {
	if c.in == nil {
		return "", ErrInputClosed
	}
	return c.in.Prompt(prompt)
}

func (c *Console) pause(d time.Duration) {
	if c.sleep != nil {
		c.sleep(d)
	}
}

// Trace stamps event with the time and run ID and hands it to the tracer.
func (c *Console) Trace(event log.Event) {
	c.trace(event)
}

func (c *Console) trace(event log.Event) {
	event.Timestamp = time.Now()
	event.RunID = c.runID
	c.tracer.Log(event)
}

func (c *Console) traceError(scenario log.Scenario, context string, err error) {
	c.trace(log.Event{
		Scenario: scenario,
		Category: log.CategoryError,
		Error:    &log.ErrorEventData{Message: err.Error(), Context: context},
	})
}

// LinePrompter reads lines from a plain reader. It is used for piped input
// and in tests.
type LinePrompter struct {
	r *bufio.Reader
	w io.Writer
}

// NewLinePrompter creates a prompter reading from r and echoing prompts to w.
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{r: bufio.NewReader(r), w: w}
}

// Prompt writes prompt and reads a line. A final line without a newline is
// still returned; ErrInputClosed is returned only when nothing was read.
func (p *LinePrompter) Prompt(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(p.w, prompt)
	}
	line, err := p.r.ReadString('\n')
	if err != nil {
		if line == "" {
			if errors.Is(err, io.EOF) {
				return "", ErrInputClosed
			}
			return "", fmt.Errorf("read input: %w", err)
		}
	}
	return trimNewline(line), nil
}

func trimNewline(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}

// Styles holds the lipgloss styles used for console output. Styles render
// as plain text when the writer is not a terminal.
type Styles struct {
	Banner lipgloss.Style
	OK     lipgloss.Style
	Fail   lipgloss.Style
}

// NewStyles creates styles whose colour profile follows w.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Banner: r.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(6)),
		OK:     r.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(2)),
		Fail:   r.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(1)),
	}
}
