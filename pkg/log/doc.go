// Package log provides structured simulation tracing.
//
// Every scenario in the simulator reports what it does (light transitions,
// register writes, EEPROM accesses, console input, failures) as an Event.
// This trace is separate from operational logging (slog): it is a complete
// machine-readable record of one run that can be replayed and analysed
// offline with the embsim-trace tool.
//
// # Basic Usage
//
// Applications configure tracing by providing a Logger implementation:
//
//	// For development: trace to console via slog
//	tracer := log.NewSlogAdapter(slog.Default())
//
//	// For later analysis: write to a binary file
//	tracer, _ := log.NewFileLogger("run.trace")
//
//	// Both: use MultiLogger
//	tracer := log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Each event carries exactly one payload:
//   - StateChangeEvent: traffic light, lock and self-test transitions
//   - RegisterEvent: bit operations on a port register
//   - StorageEvent: EEPROM reads and writes
//   - InputEvent: console input consumed by a scenario
//   - ErrorEventData: failures in any scenario
//
// # File Format
//
// Trace files are a plain concatenation of CBOR-encoded events with integer
// map keys, conventionally using the .trace extension.
package log
