package sim

import (
	"github.com/JosephJonathanFernandes/embedded-menu/pkg/lock"
	"github.com/JosephJonathanFernandes/embedded-menu/pkg/log"
)

// LockOutcome is how a password session ended.
type LockOutcome uint8

const (
	AccessGranted LockOutcome = iota
	SystemLocked
	InputFailed
)

// String returns the outcome name.
func (o LockOutcome) String() string {
	switch o {
	case AccessGranted:
		return "GRANTED"
	case SystemLocked:
		return "LOCKED"
	case InputFailed:
		return "INPUT_FAILED"
	default:
		return "UNKNOWN"
	}
}

const passwordPrompt = "Enter Password: "

// PasswordLock asks for the password up to lock.MaxAttempts times.
// A read failure ends the session with InputFailed and the read error.
func PasswordLock(c *Console, l *lock.Lock) (LockOutcome, error) {
	attempts := lock.MaxAttempts

	for attempts > 0 {
		attempts--

		attempt, err := c.ReadLine(passwordPrompt)
		if err != nil {
			c.Println("Input error.")
			c.traceError(log.ScenarioPasswordLock, "read password", err)
			return InputFailed, err
		}
		// Only the length is traced, never the attempt itself.
		c.trace(log.Event{
			Scenario: log.ScenarioPasswordLock,
			Category: log.CategoryInput,
			Input:    &log.InputEvent{Prompt: passwordPrompt, Length: len(attempt)},
		})

		if l.Check(attempt) {
			c.Println("Access Granted")
			c.traceLock("GRANTED", "")
			return AccessGranted, nil
		}
		c.Printf("Wrong Password. Attempts left: %d\n", attempts)
	}

	c.Println("System Locked")
	c.traceLock("LOCKED", "attempts exhausted")
	return SystemLocked, nil
}

func (c *Console) traceLock(state, reason string) {
	c.trace(log.Event{
		Scenario: log.ScenarioPasswordLock,
		Category: log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityLock,
			OldState: "ARMED",
			NewState: state,
			Reason:   reason,
		},
	})
}
