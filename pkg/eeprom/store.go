package eeprom

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// DefaultPath is the file used when no path is configured.
const DefaultPath = "eeprom.bin"

// CellSize is the size of the stored record in bytes.
const CellSize = 4

// ErrShortRead is the cause of a read that found fewer than CellSize bytes.
var ErrShortRead = errors.New("short read")

// Op names the file operation that failed.
type Op string

const (
	OpOpen  Op = "open"
	OpWrite Op = "write"
	OpRead  Op = "read"
	OpClose Op = "close"
)

// IOError is returned for any failure touching the backing file.
type IOError struct {
	Op   Op
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("eeprom %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Store manages the EEPROM cell file.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store for path. An empty path selects DefaultPath.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Write stores value, creating or truncating the file.
func (s *Store) Write(value int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return &IOError{Op: OpOpen, Path: s.path, Err: err}
	}

	var buf [CellSize]byte
	binary.NativeEndian.PutUint32(buf[:], uint32(value))

	if _, err := f.Write(buf[:]); err != nil {
		f.Close()
		return &IOError{Op: OpWrite, Path: s.path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &IOError{Op: OpClose, Path: s.path, Err: err}
	}
	return nil
}

// Read loads the stored value. Only the first CellSize bytes are
// significant; trailing bytes are ignored.
func (s *Store) Read() (int32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		return 0, &IOError{Op: OpOpen, Path: s.path, Err: err}
	}
	defer f.Close()

	var buf [CellSize]byte
	if _, err := io.ReadFull(f, buf[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			err = ErrShortRead
		}
		return 0, &IOError{Op: OpRead, Path: s.path, Err: err}
	}

	return int32(binary.NativeEndian.Uint32(buf[:])), nil
}

// Clear removes the backing file. A missing file is not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return &IOError{Op: OpWrite, Path: s.path, Err: err}
	}
	return nil
}
