package sim

import (
	"github.com/JosephJonathanFernandes/embedded-menu/pkg/log"
)

const uartPrompt = "Enter a character to send: "

// UARTEcho reads a line and echoes its first byte back as if it came over
// the UART receive register. An empty line is received as a newline byte,
// which is what the transmitter would have put on the wire.
func UARTEcho(c *Console) (byte, error) {
	line, err := c.ReadLine(uartPrompt)
	if err != nil {
		c.Println("Input error.")
		c.traceError(log.ScenarioUARTEcho, "read character", err)
		return 0, err
	}

	rx := byte('\n')
	if len(line) > 0 {
		rx = line[0]
	}

	c.Printf("UART Received: %c\n", rx)
	c.trace(log.Event{
		Scenario: log.ScenarioUARTEcho,
		Category: log.CategoryInput,
		Input:    &log.InputEvent{Prompt: uartPrompt, Length: len(line), Data: []byte{rx}},
	})
	return rx, nil
}
