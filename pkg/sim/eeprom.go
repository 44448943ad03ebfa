package sim

import (
	"fmt"

	"github.com/JosephJonathanFernandes/embedded-menu/pkg/eeprom"
	"github.com/JosephJonathanFernandes/embedded-menu/pkg/log"
)

// EEPROMValue is the value written by every EEPROM simulation run.
const EEPROMValue int32 = 99

// Cell is the EEPROM storage a scenario runs against.
// *eeprom.Store implements it.
type Cell interface {
	Path() string
	Write(value int32) error
	Read() (int32, error)
}

var _ Cell = (*eeprom.Store)(nil)

// EEPROMSimulation writes EEPROMValue to the store, reads it back and prints
// the stored value. A write failure skips the read. All failures are
// *eeprom.IOError values.
func EEPROMSimulation(c *Console, store Cell) (int32, error) {
	if err := store.Write(EEPROMValue); err != nil {
		c.traceError(log.ScenarioEEPROM, "write", err)
		return 0, fmt.Errorf("write eeprom: %w", err)
	}
	c.traceStorage(log.StorageOpWrite, store.Path(), EEPROMValue)

	value, err := store.Read()
	if err != nil {
		c.traceError(log.ScenarioEEPROM, "read", err)
		return 0, fmt.Errorf("read eeprom: %w", err)
	}
	c.traceStorage(log.StorageOpRead, store.Path(), value)

	c.Printf("EEPROM Stored Value: %d\n", value)
	return value, nil
}

func (c *Console) traceStorage(op log.StorageOp, path string, value int32) {
	c.trace(log.Event{
		Scenario: log.ScenarioEEPROM,
		Category: log.CategoryStorage,
		Storage:  &log.StorageEvent{Op: op, Path: path, Value: value},
	})
}
