package sim

import (
	"time"

	"github.com/JosephJonathanFernandes/embedded-menu/pkg/log"
	"github.com/JosephJonathanFernandes/embedded-menu/pkg/port"
)

// LED pattern parameters.
const (
	LEDStartPattern port.Register = 0xAA
	LEDRows                       = 5
	LEDRowDelay                   = 1 * time.Second
)

// Bits touched by PortControl.
const (
	portSetBit    = 2
	portToggleBit = 3
)

// LEDPattern prints LEDRows rows of the LED bank, inverting the pattern
// after each row. It returns the pattern shown on each row.
func LEDPattern(c *Console) []port.Register {
	pattern := LEDStartPattern
	rows := make([]port.Register, 0, LEDRows)

	for i := 0; i < LEDRows; i++ {
		c.Println(pattern.Pattern())
		rows = append(rows, pattern)

		next := pattern.Invert()
		c.traceRegister(log.ScenarioLEDPattern, log.RegisterOpInvert, -1, pattern, next)
		pattern = next
		c.pause(LEDRowDelay)
	}
	return rows
}

// PortControl sets bit 2, toggles bit 3 and clears bit 2 of a zeroed port,
// printing the register after each step. It returns the final value.
func PortControl(c *Console) port.Register {
	var reg port.Register
	c.Printf("Initial PORT: %s\n", reg)
	c.traceRegister(log.ScenarioPortControl, log.RegisterOpInit, -1, reg, reg)

	steps := []struct {
		label string
		op    log.RegisterOp
		bit   int
		apply func(port.Register, int) port.Register
	}{
		{"Set bit 2", log.RegisterOpSet, portSetBit, port.Register.Set},
		{"Toggle bit 3", log.RegisterOpToggle, portToggleBit, port.Register.Toggle},
		{"Clear bit 2", log.RegisterOpClear, portSetBit, port.Register.Clear},
	}

	for _, step := range steps {
		next := step.apply(reg, step.bit)
		c.Printf("%s: %s\n", step.label, next)
		c.traceRegister(log.ScenarioPortControl, step.op, step.bit, reg, next)
		reg = next
	}
	return reg
}

// traceRegister records a register operation. A negative bit means the
// operation is not bit-specific.
func (c *Console) traceRegister(scenario log.Scenario, op log.RegisterOp, bit int, before, after port.Register) {
	ev := &log.RegisterEvent{Op: op, Before: uint8(before), After: uint8(after)}
	if bit >= 0 {
		b := uint8(bit)
		ev.Bit = &b
	}
	c.trace(log.Event{Scenario: scenario, Category: log.CategoryRegister, Register: ev})
}
