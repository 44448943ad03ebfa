// Package interactive provides the interactive menu for embsim.
package interactive

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/JosephJonathanFernandes/embedded-menu/pkg/eeprom"
	"github.com/JosephJonathanFernandes/embedded-menu/pkg/lock"
	"github.com/JosephJonathanFernandes/embedded-menu/pkg/log"
	"github.com/JosephJonathanFernandes/embedded-menu/pkg/sim"
)

const menuTitle = "===== Embedded System Simulation Menu ====="

var menuItems = []string{
	"1. Traffic Light Simulation",
	"2. Password Protected Lock",
	"3. LED Pattern Generator",
	"4. Stopwatch Timer",
	"5. UART Communication Simulation",
	"6. Bitwise Port Control",
	"7. EEPROM File Simulation",
	"0. Exit",
}

const menuPrompt = "Choose an option: "

// Result is how the menu loop ended.
type Result int

const (
	// ResultExit means the user chose 0.
	ResultExit Result = iota
	// ResultInputClosed means input ended or failed.
	ResultInputClosed
	// ResultCancelled means the context was cancelled.
	ResultCancelled
)

// Menu runs the simulator menu loop.
type Menu struct {
	console *sim.Console
	store   *eeprom.Store
	lock    *lock.Lock
	logger  *slog.Logger
}

// New creates a menu. The console supplies both output and input.
func New(console *sim.Console, store *eeprom.Store, l *lock.Lock, logger *slog.Logger) *Menu {
	if logger == nil {
		logger = slog.Default()
	}
	return &Menu{
		console: console,
		store:   store,
		lock:    l,
		logger:  logger,
	}
}

// Run shows the menu until the user exits or input ends.
func (m *Menu) Run(ctx context.Context) Result {
	for {
		select {
		case <-ctx.Done():
			return ResultCancelled
		default:
		}

		m.printMenu()

		line, err := m.console.ReadLine(menuPrompt)
		if err != nil {
			if errors.Is(err, ErrInterrupted) {
				m.console.Println()
				continue
			}
			m.logger.Debug("menu input ended", "error", err)
			m.console.Println("Input error, exiting.")
			return ResultInputClosed
		}

		m.console.Trace(log.Event{
			Scenario: log.ScenarioMenu,
			Category: log.CategoryInput,
			Input:    &log.InputEvent{Prompt: menuPrompt, Length: len(line), Data: []byte(line)},
		})

		choice, ok := ParseSelection(line)
		if !ok {
			m.console.Println("Invalid choice.")
			continue
		}

		if choice == 0 {
			m.console.Println("Exiting...")
			return ResultExit
		}

		if !m.dispatch(choice) {
			m.console.Println("Invalid choice.")
		}
	}
}

// dispatch runs the scenario for choice and reports whether choice was valid.
func (m *Menu) dispatch(choice int) bool {
	m.logger.Debug("menu selection", "choice", choice)

	switch choice {
	case 1:
		sim.TrafficLight(m.console)
	case 2:
		outcome, err := sim.PasswordLock(m.console, m.lock)
		m.logger.Debug("password session ended", "outcome", outcome.String(), "error", err)
	case 3:
		sim.LEDPattern(m.console)
	case 4:
		sim.Stopwatch(m.console)
	case 5:
		if _, err := sim.UARTEcho(m.console); err != nil {
			m.logger.Debug("uart echo failed", "error", err)
		}
	case 6:
		sim.PortControl(m.console)
	case 7:
		if _, err := sim.EEPROMSimulation(m.console, m.store); err != nil {
			m.console.Printf("EEPROM I/O error: %v\n", err)
			m.logger.Warn("eeprom simulation failed", "path", m.store.Path(), "error", err)
		}
	default:
		return false
	}
	return true
}

func (m *Menu) printMenu() {
	m.console.Println()
	m.console.Println(m.console.Styles().Banner.Render(menuTitle))
	for _, item := range menuItems {
		m.console.Println(item)
	}
}

// ParseSelection parses a menu line the way atoi does: surrounding
// whitespace is ignored, an optional sign and leading digits are read, and
// anything after the digits is ignored. A line with no leading digits is 0.
// Only values out of int range are rejected.
func ParseSelection(line string) (int, bool) {
	s := strings.TrimSpace(line)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, true
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
