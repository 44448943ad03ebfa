// Package config loads simulator settings from a YAML file.
//
// Settings are layered: Default, then the file given to Load, then any
// command-line overrides the caller applies afterwards.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/JosephJonathanFernandes/embedded-menu/pkg/eeprom"
	"github.com/JosephJonathanFernandes/embedded-menu/pkg/lock"
)

// Config holds simulator settings.
type Config struct {
	// EEPROMFile is the file backing the simulated EEPROM cell.
	EEPROMFile string `yaml:"eeprom_file"`

	// TraceFile receives CBOR trace events. Empty disables file tracing.
	TraceFile string `yaml:"trace_file"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// SkipPauses disables simulated delays in interactive mode too.
	SkipPauses bool `yaml:"skip_pauses"`

	// PasswordHash is a bcrypt hash replacing the factory lock secret.
	PasswordHash string `yaml:"password_hash"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		EEPROMFile: eeprom.DefaultPath,
		LogLevel:   "warn",
	}
}

// LoadError reports a config file that could not be read or parsed.
type LoadError struct {
	// File is the path to the file that failed to load.
	File string

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.File == "" {
		return msg
	}
	return e.File + ": " + msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Parse overlays YAML data on Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, &LoadError{Message: "failed to parse YAML", Cause: err}
	}
	if cfg.EEPROMFile == "" {
		cfg.EEPROMFile = eeprom.DefaultPath
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, &LoadError{Message: "invalid config", Cause: err}
	}
	return cfg, nil
}

// Load reads and parses the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}

	cfg, err := Parse(data)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.File = path
			return Config{}, le
		}
		return Config{}, &LoadError{File: path, Message: err.Error()}
	}
	return cfg, nil
}

// Validate checks field values.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.PasswordHash != "" {
		if _, err := lock.NewFromHash(c.PasswordHash); err != nil {
			return err
		}
	}
	return nil
}

// Lock returns the password lock configured by c.
func (c Config) Lock() (*lock.Lock, error) {
	if c.PasswordHash == "" {
		return lock.Default(), nil
	}
	return lock.NewFromHash(c.PasswordHash)
}

// ParseLevel maps a level name to an slog level. An empty name is warn.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}
