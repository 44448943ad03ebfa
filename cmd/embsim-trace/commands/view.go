// Package commands implements the embsim-trace CLI commands.
package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/JosephJonathanFernandes/embedded-menu/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Scenario *log.Scenario
	Category *log.Category
}

const timestampLayout = "2006-01-02T15:04:05.000000Z"

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [run:id] SCENARIO CATEGORY
	ts := event.Timestamp.UTC().Format(timestampLayout)
	fmt.Fprintf(w, "%s [run:%s] %s %s\n", ts, shortenRunID(event.RunID), event.Scenario, event.Category)

	switch {
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Register != nil:
		formatRegisterDetails(w, event.Register)
	case event.Storage != nil:
		fmt.Fprintf(w, "  %s %s = %d\n", event.Storage.Op, event.Storage.Path, event.Storage.Value)
	case event.Input != nil:
		formatInputDetails(w, event.Input)
	case event.Error != nil:
		fmt.Fprintf(w, "  Message: %s\n", event.Error.Message)
		if event.Error.Context != "" {
			fmt.Fprintf(w, "  Context: %s\n", event.Error.Context)
		}
	}

	fmt.Fprintln(w)
}

// shortenRunID returns the first 8 characters of the run ID.
func shortenRunID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	fmt.Fprintf(w, "  Entity: %s\n", sc.Entity)
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatRegisterDetails(w io.Writer, reg *log.RegisterEvent) {
	fmt.Fprintf(w, "  %s", reg.Op)
	if reg.Bit != nil {
		fmt.Fprintf(w, " bit %d", *reg.Bit)
	}
	fmt.Fprintf(w, ": 0x%02X -> 0x%02X (%08b)\n", reg.Before, reg.After, reg.After)
}

func formatInputDetails(w io.Writer, in *log.InputEvent) {
	if in.Prompt != "" {
		fmt.Fprintf(w, "  Prompt: %q\n", in.Prompt)
	}
	fmt.Fprintf(w, "  Length: %d\n", in.Length)
	if len(in.Data) > 0 {
		fmt.Fprintf(w, "  Data: %s\n", hex.EncodeToString(in.Data))
	}
}

// ParseScenarioFlag parses a scenario name from a command-line flag.
func ParseScenarioFlag(s string) (log.Scenario, error) {
	sc, ok := log.ParseScenario(s)
	if !ok {
		return 0, fmt.Errorf("invalid scenario: %s", s)
	}
	return sc, nil
}

// ParseCategoryFlag parses a category string from a command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "state":
		return log.CategoryState, nil
	case "register":
		return log.CategoryRegister, nil
	case "storage":
		return log.CategoryStorage, nil
	case "input":
		return log.CategoryInput, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be state, register, storage, input, or error)", s)
	}
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, log.Filter{
		Scenario: filter.Scenario,
		Category: filter.Category,
	})
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}

	return nil
}
