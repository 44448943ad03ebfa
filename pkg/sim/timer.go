package sim

import (
	"strconv"
	"time"

	"github.com/JosephJonathanFernandes/embedded-menu/pkg/log"
)

// Stopwatch parameters.
const (
	StopwatchSeconds = 10
	StopwatchTick    = 1 * time.Second
)

// Stopwatch counts from 0 to StopwatchSeconds-1, one line per tick, and
// returns the number of ticks printed.
func Stopwatch(c *Console) int {
	ticks := 0
	for seconds := 0; seconds < StopwatchSeconds; seconds++ {
		c.Printf("Time: %d seconds\n", seconds)
		ticks++
		c.pause(StopwatchTick)
	}

	c.trace(log.Event{
		Scenario: log.ScenarioStopwatch,
		Category: log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityTimer,
			OldState: "RUNNING",
			NewState: "STOPPED",
			Reason:   strconv.Itoa(ticks) + " ticks",
		},
	})
	return ticks
}
