package sim

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinePrompter(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("first\r\nsecond\nlast"), &out)

	line, err := p.Prompt("> ")
	require.NoError(t, err)
	assert.Equal(t, "first", line)

	line, err = p.Prompt("> ")
	require.NoError(t, err)
	assert.Equal(t, "second", line)

	// Final line without newline is still delivered.
	line, err = p.Prompt("> ")
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	_, err = p.Prompt("> ")
	assert.ErrorIs(t, err, ErrInputClosed)

	assert.Equal(t, "> > > > ", out.String())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("device gone") }

func TestLinePrompterReadError(t *testing.T) {
	p := NewLinePrompter(failingReader{}, io.Discard)

	_, err := p.Prompt("")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInputClosed)
	assert.Contains(t, err.Error(), "device gone")
}

func TestConsoleWithoutInput(t *testing.T) {
	c := NewConsole(io.Discard, nil, Options{})
	_, err := c.ReadLine("x")
	assert.ErrorIs(t, err, ErrInputClosed)
}

func TestConsolePauses(t *testing.T) {
	c := NewConsole(io.Discard, nil, Options{})
	assert.True(t, c.PausesEnabled())

	fast := c.WithoutPauses()
	assert.False(t, fast.PausesEnabled())
	assert.True(t, c.PausesEnabled(), "original console must keep its pauses")

	skip := NewConsole(io.Discard, nil, Options{SkipPauses: true})
	assert.False(t, skip.PausesEnabled())
}

func TestSkipPausesDoesNotSleep(t *testing.T) {
	c := NewConsole(io.Discard, nil, Options{SkipPauses: true})

	start := time.Now()
	TrafficLight(c)
	LEDPattern(c)
	Stopwatch(c)
	assert.Less(t, time.Since(start), time.Second)
}

func TestStylesArePlainOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := NewStyles(&buf)
	assert.Equal(t, SelfTestPassed, s.OK.Render(SelfTestPassed))
}

func TestConsoleStylesOverride(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)
	styles.Banner = styles.Banner.Italic(true)

	c := NewConsole(&buf, nil, Options{Styles: &styles})
	assert.True(t, c.Styles().Banner.GetItalic())

	plain := NewConsole(&buf, nil, Options{})
	assert.False(t, plain.Styles().Banner.GetItalic())
	assert.True(t, plain.Styles().Banner.GetBold())
}
