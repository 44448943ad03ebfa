package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/JosephJonathanFernandes/embedded-menu/pkg/log"
)

var baseTime = time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC)

func createTestTraceFile(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.trace")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func bit(b uint8) *uint8 { return &b }

// sampleRun is a short run touching every category.
func sampleRun() []log.Event {
	const run = "7d1e4c52-0b9a-4f61-a3d8-52c4e0f1b9aa"
	return []log.Event{
		{
			Timestamp: baseTime,
			RunID:     run,
			Scenario:  log.ScenarioTrafficLight,
			Category:  log.CategoryState,
			StateChange: &log.StateChangeEvent{
				Entity:   log.StateEntityLight,
				NewState: "RED",
			},
		},
		{
			Timestamp: baseTime.Add(time.Second),
			RunID:     run,
			Scenario:  log.ScenarioPortControl,
			Category:  log.CategoryRegister,
			Register: &log.RegisterEvent{
				Op:     log.RegisterOpToggle,
				Bit:    bit(3),
				Before: 0x04,
				After:  0x0C,
			},
		},
		{
			Timestamp: baseTime.Add(2 * time.Second),
			RunID:     run,
			Scenario:  log.ScenarioEEPROM,
			Category:  log.CategoryStorage,
			Storage: &log.StorageEvent{
				Op:    log.StorageOpWrite,
				Path:  "eeprom.bin",
				Value: 99,
			},
		},
		{
			Timestamp: baseTime.Add(3 * time.Second),
			RunID:     run,
			Scenario:  log.ScenarioUARTEcho,
			Category:  log.CategoryInput,
			Input: &log.InputEvent{
				Prompt: "Enter a character to send: ",
				Length: 1,
				Data:   []byte("A"),
			},
		},
		{
			Timestamp: baseTime.Add(4 * time.Second),
			RunID:     run,
			Scenario:  log.ScenarioEEPROM,
			Category:  log.CategoryError,
			Error: &log.ErrorEventData{
				Message: "eeprom open eeprom.bin: permission denied",
				Context: "read",
			},
		},
	}
}
