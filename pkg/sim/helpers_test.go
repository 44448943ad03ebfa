package sim

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/JosephJonathanFernandes/embedded-menu/pkg/log"
)

// recordingLogger captures trace events.
type recordingLogger struct {
	mu     sync.Mutex
	events []log.Event
}

func (r *recordingLogger) Log(event log.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingLogger) byCategory(cat log.Category) []log.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []log.Event
	for _, e := range r.events {
		if e.Category == cat {
			out = append(out, e)
		}
	}
	return out
}

type testConsole struct {
	*Console
	out    *bytes.Buffer
	events *recordingLogger
	pauses []time.Duration
}

// newTestConsole builds a console fed with input whose pauses are recorded
// instead of slept.
func newTestConsole(t *testing.T, input string) *testConsole {
	t.Helper()
	tc := &testConsole{
		out:    &bytes.Buffer{},
		events: &recordingLogger{},
	}
	tc.Console = NewConsole(tc.out, NewLinePrompter(strings.NewReader(input), tc.out), Options{
		Tracer: tc.events,
		RunID:  "test-run",
	})
	tc.Console.sleep = func(d time.Duration) { tc.pauses = append(tc.pauses, d) }
	return tc
}

func (tc *testConsole) lines() []string {
	return strings.Split(strings.TrimRight(tc.out.String(), "\n"), "\n")
}
