package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger.
// Useful for development when you want to see the trace in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("run_id", event.RunID),
		slog.String("scenario", event.Scenario.String()),
		slog.String("category", event.Category.String()),
	}

	switch {
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("entity", event.StateChange.Entity.String()),
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Register != nil:
		attrs = append(attrs,
			slog.String("op", event.Register.Op.String()),
			slog.Any("before", event.Register.Before),
			slog.Any("after", event.Register.After),
		)
		if event.Register.Bit != nil {
			attrs = append(attrs, slog.Int("bit", int(*event.Register.Bit)))
		}
	case event.Storage != nil:
		attrs = append(attrs,
			slog.String("op", event.Storage.Op.String()),
			slog.String("path", event.Storage.Path),
			slog.Int("value", int(event.Storage.Value)),
		)
	case event.Input != nil:
		attrs = append(attrs, slog.Int("length", event.Input.Length))
		if event.Input.Prompt != "" {
			attrs = append(attrs, slog.String("prompt", event.Input.Prompt))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "trace", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
