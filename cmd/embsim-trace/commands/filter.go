package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/JosephJonathanFernandes/embedded-menu/pkg/log"
)

// FilterOptions holds the filter command options.
type FilterOptions struct {
	Output    string
	RunID     string
	Scenario  string
	Category  string
	TimeStart string
	TimeEnd   string
}

// buildFilter converts string options to a log.Filter.
func buildFilter(opts FilterOptions) (log.Filter, error) {
	filter := log.Filter{RunID: opts.RunID}

	if opts.Scenario != "" {
		s, err := ParseScenarioFlag(opts.Scenario)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Scenario = &s
	}
	if opts.Category != "" {
		c, err := ParseCategoryFlag(opts.Category)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Category = &c
	}
	if opts.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeStart)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-start: %w", err)
		}
		filter.TimeStart = &t
	}
	if opts.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeEnd)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-end: %w", err)
		}
		filter.TimeEnd = &t
	}
	return filter, nil
}

// RunFilter copies the events of path matching opts into opts.Output and
// returns how many were written.
func RunFilter(path string, opts FilterOptions) (int, error) {
	filter, err := buildFilter(opts)
	if err != nil {
		return 0, err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	out, err := log.NewFileLogger(opts.Output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to read event: %w", err)
		}
		out.Log(event)
		count++
	}
	return count, nil
}
