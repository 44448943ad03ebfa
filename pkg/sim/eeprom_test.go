package sim

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JosephJonathanFernandes/embedded-menu/pkg/eeprom"
	"github.com/JosephJonathanFernandes/embedded-menu/pkg/log"
)

func TestEEPROMSimulation(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		tc := newTestConsole(t, "")
		store := eeprom.NewStore(filepath.Join(t.TempDir(), "eeprom.bin"))

		value, err := EEPROMSimulation(tc.Console, store)
		require.NoError(t, err)
		assert.Equal(t, EEPROMValue, value)
		assert.Equal(t, "EEPROM Stored Value: 99\n", tc.out.String())

		storage := tc.events.byCategory(log.CategoryStorage)
		require.Len(t, storage, 2)
		assert.Equal(t, log.StorageOpWrite, storage[0].Storage.Op)
		assert.Equal(t, log.StorageOpRead, storage[1].Storage.Op)
		assert.Equal(t, int32(99), storage[1].Storage.Value)
	})

	t.Run("OverwritesExisting", func(t *testing.T) {
		tc := newTestConsole(t, "")
		store := eeprom.NewStore(filepath.Join(t.TempDir(), "eeprom.bin"))
		require.NoError(t, store.Write(12345))

		value, err := EEPROMSimulation(tc.Console, store)
		require.NoError(t, err)
		assert.Equal(t, EEPROMValue, value)
	})

	t.Run("WriteFailureSkipsRead", func(t *testing.T) {
		tc := newTestConsole(t, "")
		store := eeprom.NewStore(filepath.Join(t.TempDir(), "missing", "eeprom.bin"))

		_, err := EEPROMSimulation(tc.Console, store)
		require.Error(t, err)

		var ioErr *eeprom.IOError
		require.True(t, errors.As(err, &ioErr))
		assert.Equal(t, eeprom.OpOpen, ioErr.Op)
		assert.Empty(t, tc.out.String())
		assert.Empty(t, tc.events.byCategory(log.CategoryStorage))
		assert.Len(t, tc.events.byCategory(log.CategoryError), 1)
	})
}

func TestVerifyEEPROM(t *testing.T) {
	t.Run("Missing", func(t *testing.T) {
		tc := newTestConsole(t, "")
		store := eeprom.NewStore(filepath.Join(t.TempDir(), "eeprom.bin"))

		err := verifyEEPROM(tc.Console, store)
		require.Error(t, err)
		assert.Contains(t, tc.out.String(), "not found")
	})

	t.Run("Truncated", func(t *testing.T) {
		tc := newTestConsole(t, "")
		path := filepath.Join(t.TempDir(), "eeprom.bin")
		require.NoError(t, os.WriteFile(path, []byte{99}, 0644))

		err := verifyEEPROM(tc.Console, eeprom.NewStore(path))
		assert.ErrorIs(t, err, eeprom.ErrShortRead)
		assert.Contains(t, tc.out.String(), "failed to read")
	})

	t.Run("Mismatch", func(t *testing.T) {
		tc := newTestConsole(t, "")
		store := eeprom.NewStore(filepath.Join(t.TempDir(), "eeprom.bin"))
		require.NoError(t, store.Write(42))

		err := verifyEEPROM(tc.Console, store)
		require.Error(t, err)
		assert.Contains(t, tc.out.String(), "eeprom value mismatch: got 42 expected 99")
	})

	t.Run("OK", func(t *testing.T) {
		tc := newTestConsole(t, "")
		store := eeprom.NewStore(filepath.Join(t.TempDir(), "eeprom.bin"))
		require.NoError(t, store.Write(99))

		require.NoError(t, verifyEEPROM(tc.Console, store))
		assert.Equal(t, "[ci] eeprom value OK (99)\n", tc.out.String())
	})
}
