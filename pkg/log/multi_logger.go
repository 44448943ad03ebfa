package log

// MultiLogger sends events to multiple loggers.
// Useful when you want both console output (via SlogAdapter)
// and file output (via FileLogger) simultaneously.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger creates a MultiLogger that sends events to all provided
// loggers. Nil loggers are skipped.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	m := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

// Log sends the event to all configured loggers.
func (m *MultiLogger) Log(event Event) {
	for _, l := range m.loggers {
		l.Log(event)
	}
}

// Len returns the number of attached loggers.
func (m *MultiLogger) Len() int {
	return len(m.loggers)
}

// Compile-time interface satisfaction check.
var _ Logger = (*MultiLogger)(nil)
