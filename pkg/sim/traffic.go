package sim

import (
	"time"

	"github.com/JosephJonathanFernandes/embedded-menu/pkg/log"
)

// LightState is a traffic light phase.
type LightState uint8

const (
	Red LightState = iota
	Green
	Yellow
)

// TrafficLightCycles is the number of phases shown per run.
const TrafficLightCycles = 3

// String returns the phase name.
func (s LightState) String() string {
	switch s {
	case Red:
		return "RED"
	case Green:
		return "GREEN"
	case Yellow:
		return "YELLOW"
	default:
		return "UNKNOWN"
	}
}

// Next returns the phase that follows s: RED, GREEN, YELLOW, RED.
func (s LightState) Next() LightState {
	switch s {
	case Red:
		return Green
	case Green:
		return Yellow
	default:
		return Red
	}
}

// Hold returns how long the light stays in s.
func (s LightState) Hold() time.Duration {
	if s == Yellow {
		return 1 * time.Second
	}
	return 2 * time.Second
}

// TrafficLight runs the light through TrafficLightCycles phases starting at
// RED and returns the phases shown.
func TrafficLight(c *Console) []LightState {
	light := Red
	shown := make([]LightState, 0, TrafficLightCycles)

	for i := 0; i < TrafficLightCycles; i++ {
		c.Printf("%s Light ON\n", light)
		shown = append(shown, light)
		c.pause(light.Hold())

		next := light.Next()
		c.trace(log.Event{
			Scenario: log.ScenarioTrafficLight,
			Category: log.CategoryState,
			StateChange: &log.StateChangeEvent{
				Entity:   log.StateEntityLight,
				OldState: light.String(),
				NewState: next.String(),
			},
		})
		light = next
	}
	return shown
}
