package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/JosephJonathanFernandes/embedded-menu/pkg/log"
)

// Stats holds aggregate statistics about a trace file.
type Stats struct {
	TotalEvents      int
	EventsByScenario map[log.Scenario]int
	EventsByCategory map[log.Category]int
	Runs             map[string]*RunStats
	Errors           int
	SelfTestsPassed  int
	SelfTestsFailed  int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// RunStats holds statistics for a single simulator run.
type RunStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
}

// CollectStats reads the trace file and aggregates its events.
func CollectStats(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByScenario: make(map[log.Scenario]int),
		EventsByCategory: make(map[log.Category]int),
		Runs:             make(map[string]*RunStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByScenario[event.Scenario]++
		stats.EventsByCategory[event.Category]++

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		run, ok := stats.Runs[event.RunID]
		if !ok {
			run = &RunStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
			stats.Runs[event.RunID] = run
		}
		run.Events++
		if event.Timestamp.After(run.LastSeen) {
			run.LastSeen = event.Timestamp
		}

		if event.Error != nil {
			stats.Errors++
		}
		if sc := event.StateChange; sc != nil && sc.Entity == log.StateEntitySelfTest {
			switch sc.NewState {
			case "PASSED":
				stats.SelfTestsPassed++
			case "FAILED":
				stats.SelfTestsFailed++
			}
		}
	}

	return stats, nil
}

// RunStatsCommand analyzes the trace file and prints statistics.
func RunStatsCommand(path string, w io.Writer) error {
	stats, err := CollectStats(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Simulation Trace Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Scenario:")
	for s := log.ScenarioMenu; s <= log.ScenarioSelfTest; s++ {
		if count := stats.EventsByScenario[s]; count > 0 {
			fmt.Fprintf(w, "  %-15s %d\n", s.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for c := log.CategoryState; c <= log.CategoryError; c++ {
		if count := stats.EventsByCategory[c]; count > 0 {
			fmt.Fprintf(w, "  %-15s %d\n", c.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Runs: %d\n", len(stats.Runs))
	if len(stats.Runs) > 0 {
		type runInfo struct {
			id    string
			stats *RunStats
		}
		runs := make([]runInfo, 0, len(stats.Runs))
		for id, rs := range stats.Runs {
			runs = append(runs, runInfo{id, rs})
		}
		sort.Slice(runs, func(i, j int) bool {
			return runs[i].stats.FirstSeen.Before(runs[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, r := range runs {
			duration := r.stats.LastSeen.Sub(r.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d events, duration %s\n", shortenRunID(r.id), r.stats.Events, duration)
		}
	}

	if stats.SelfTestsPassed+stats.SelfTestsFailed > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Self-tests: %d passed, %d failed\n", stats.SelfTestsPassed, stats.SelfTestsFailed)
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
