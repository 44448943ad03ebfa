package log

import (
	"strings"
	"time"
)

// Event represents a trace event emitted by a scenario.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// RunID identifies the simulator process that produced the event (UUID).
	RunID string `cbor:"2,keyasint"`

	// Scenario that emitted the event.
	Scenario Scenario `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Type-specific payload (one of these will be set).
	StateChange *StateChangeEvent `cbor:"10,keyasint,omitempty"`
	Register    *RegisterEvent    `cbor:"11,keyasint,omitempty"`
	Storage     *StorageEvent     `cbor:"12,keyasint,omitempty"`
	Input       *InputEvent       `cbor:"13,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"14,keyasint,omitempty"`
}

// Scenario identifies the simulator component that produced an event.
type Scenario uint8

const (
	ScenarioMenu Scenario = iota
	ScenarioTrafficLight
	ScenarioPasswordLock
	ScenarioLEDPattern
	ScenarioStopwatch
	ScenarioUARTEcho
	ScenarioPortControl
	ScenarioEEPROM
	ScenarioSelfTest
)

var scenarioNames = map[Scenario]string{
	ScenarioMenu:         "MENU",
	ScenarioTrafficLight: "TRAFFIC_LIGHT",
	ScenarioPasswordLock: "PASSWORD_LOCK",
	ScenarioLEDPattern:   "LED_PATTERN",
	ScenarioStopwatch:    "STOPWATCH",
	ScenarioUARTEcho:     "UART_ECHO",
	ScenarioPortControl:  "PORT_CONTROL",
	ScenarioEEPROM:       "EEPROM",
	ScenarioSelfTest:     "SELF_TEST",
}

// String returns the scenario name.
func (s Scenario) String() string {
	if name, ok := scenarioNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseScenario parses a scenario name, case-insensitively. Dashes are
// accepted in place of underscores.
func ParseScenario(name string) (Scenario, bool) {
	name = strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
	for s, n := range scenarioNames {
		if n == name {
			return s, true
		}
	}
	return 0, false
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryState indicates a state change.
	CategoryState Category = 0
	// CategoryRegister indicates a register operation.
	CategoryRegister Category = 1
	// CategoryStorage indicates an EEPROM access.
	CategoryStorage Category = 2
	// CategoryInput indicates consumed console input.
	CategoryInput Category = 3
	// CategoryError indicates an error event.
	CategoryError Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryState:
		return "STATE"
	case CategoryRegister:
		return "REGISTER"
	case CategoryStorage:
		return "STORAGE"
	case CategoryInput:
		return "INPUT"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// StateChangeEvent captures a transition of a simulated state machine.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what entity changed state.
type StateEntity uint8

const (
	StateEntityLight    StateEntity = 0
	StateEntityLock     StateEntity = 1
	StateEntitySelfTest StateEntity = 2
	StateEntityTimer    StateEntity = 3
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntityLight:
		return "LIGHT"
	case StateEntityLock:
		return "LOCK"
	case StateEntitySelfTest:
		return "SELF_TEST"
	case StateEntityTimer:
		return "TIMER"
	default:
		return "UNKNOWN"
	}
}

// RegisterEvent captures one operation on an 8-bit register.
type RegisterEvent struct {
	// Op is the operation applied.
	Op RegisterOp `cbor:"1,keyasint"`

	// Bit is the bit index for single-bit operations.
	Bit *uint8 `cbor:"2,keyasint,omitempty"`

	// Before is the register value prior to the operation.
	Before uint8 `cbor:"3,keyasint"`

	// After is the register value following the operation.
	After uint8 `cbor:"4,keyasint"`
}

// RegisterOp names a register operation.
type RegisterOp uint8

const (
	RegisterOpInit   RegisterOp = 0
	RegisterOpSet    RegisterOp = 1
	RegisterOpToggle RegisterOp = 2
	RegisterOpClear  RegisterOp = 3
	RegisterOpInvert RegisterOp = 4
)

// String returns the register operation name.
func (o RegisterOp) String() string {
	switch o {
	case RegisterOpInit:
		return "INIT"
	case RegisterOpSet:
		return "SET"
	case RegisterOpToggle:
		return "TOGGLE"
	case RegisterOpClear:
		return "CLEAR"
	case RegisterOpInvert:
		return "INVERT"
	default:
		return "UNKNOWN"
	}
}

// StorageEvent captures an access to the EEPROM cell.
type StorageEvent struct {
	// Op is the access kind.
	Op StorageOp `cbor:"1,keyasint"`

	// Path is the backing file.
	Path string `cbor:"2,keyasint"`

	// Value written or read back.
	Value int32 `cbor:"3,keyasint"`
}

// StorageOp names an EEPROM access.
type StorageOp uint8

const (
	StorageOpWrite StorageOp = 0
	StorageOpRead  StorageOp = 1
)

// String returns the storage operation name.
func (o StorageOp) String() string {
	switch o {
	case StorageOpWrite:
		return "WRITE"
	case StorageOpRead:
		return "READ"
	default:
		return "UNKNOWN"
	}
}

// InputEvent captures console input consumed by a scenario.
type InputEvent struct {
	// Prompt shown before the input was read.
	Prompt string `cbor:"1,keyasint,omitempty"`

	// Length of the line read, without the trailing newline.
	Length int `cbor:"2,keyasint"`

	// Data holds the input bytes when they are safe to record.
	// Secrets are never recorded.
	Data []byte `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData captures errors in any scenario.
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"2,keyasint,omitempty"`
}
