// Command embsim is a console simulator for small embedded-system scenarios.
//
// It drives seven scenarios from a text menu: a traffic light, a password
// lock, an LED pattern generator, a stopwatch, a UART echo, bitwise port
// control and a file-backed EEPROM cell. A self-test mode runs every
// non-interactive scenario without delays and checks the EEPROM round trip.
//
// Usage:
//
//	embsim [flags]
//
// Flags:
//
//	-ci, -test          Run the self-test and exit with status 0 or 1
//	-config string      YAML configuration file
//	-eeprom string      EEPROM backing file (default "eeprom.bin")
//	-trace string       Append CBOR trace events to this file
//	-log-level string   Log level: debug, info, warn, error (default "warn")
//	-version            Print the version and exit
//
// Examples:
//
//	# Interactive menu
//	embsim
//
//	# CI self-test
//	embsim --ci
//
//	# Record a trace for embsim-trace
//	embsim -trace run.trace -log-level debug
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/JosephJonathanFernandes/embedded-menu/cmd/embsim/interactive"
	"github.com/JosephJonathanFernandes/embedded-menu/pkg/config"
	"github.com/JosephJonathanFernandes/embedded-menu/pkg/eeprom"
	"github.com/JosephJonathanFernandes/embedded-menu/pkg/log"
	"github.com/JosephJonathanFernandes/embedded-menu/pkg/sim"
	"github.com/JosephJonathanFernandes/embedded-menu/pkg/version"
)

// Flags holds the parsed command line.
type Flags struct {
	SelfTest    bool
	ConfigFile  string
	EEPROMFile  string
	TraceFile   string
	LogLevel    string
	ShowVersion bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run is main without the process exit, returning the exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 1
	}

	if flags.ShowVersion {
		fmt.Fprintln(stdout, version.Banner("embsim"))
		return 0
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	// Interactive input is set up first so logs share readline's stderr.
	var term terminal
	if !flags.SelfTest {
		term, err = setupInput(stdin, stdout, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		defer term.close()
	}

	logOut := stderr
	if term.errOut != nil {
		logOut = term.errOut
	}
	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	runID := uuid.NewString()
	tracer, closeTrace, err := setupTracing(cfg, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer closeTrace()

	logger.Info("embsim starting", "version", version.Current, "run_id", runID, "eeprom", cfg.EEPROMFile)

	store := eeprom.NewStore(cfg.EEPROMFile)

	if flags.SelfTest {
		console := sim.NewConsole(stdout, nil, sim.Options{SkipPauses: true, Tracer: tracer, RunID: runID})
		report := sim.SelfTest(console, store)
		for _, f := range report.Failures() {
			logger.Warn("self-test step failed", "step", f.Name, "error", f.Err)
		}
		return report.ExitCode()
	}

	l, err := cfg.Lock()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	// Styles follow the process stdout; readline's writer hides the terminal.
	styles := sim.NewStyles(stdout)
	console := sim.NewConsole(term.out, term.prompter, sim.Options{
		SkipPauses: cfg.SkipPauses,
		Tracer:     tracer,
		RunID:      runID,
		Styles:     &styles,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	result := interactive.New(console, store, l, logger).Run(ctx)
	logger.Info("embsim finished", "result", result)
	return 0
}

// parseFlags parses args. Flags may follow positional arguments, which are
// ignored. When -ci or -test appears anywhere, unknown flags are skipped so
// the self-test still runs.
func parseFlags(args []string, stderr io.Writer) (Flags, error) {
	var f Flags

	fs := flag.NewFlagSet("embsim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&f.SelfTest, "ci", false, "Run non-interactive self-tests and exit")
	fs.BoolVar(&f.SelfTest, "test", false, "Alias for -ci")
	fs.StringVar(&f.ConfigFile, "config", "", "YAML configuration file")
	fs.StringVar(&f.EEPROMFile, "eeprom", "", "EEPROM backing file (default \"eeprom.bin\")")
	fs.StringVar(&f.TraceFile, "trace", "", "Append CBOR trace events to this file")
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level: debug, info, warn, error (default \"warn\")")
	fs.BoolVar(&f.ShowVersion, "version", false, "Print the version and exit")

	selfTest := hasSelfTestFlag(args)

	rest := args
	for {
		err := fs.Parse(rest)
		switch {
		case errors.Is(err, flag.ErrHelp):
			return Flags{}, err
		case err != nil && !selfTest:
			return Flags{}, err
		case err != nil:
			// Bad flag syntax leaves the argument unconsumed.
			next := fs.Args()
			if len(next) >= len(rest) {
				next = next[1:]
			}
			rest = next
			continue
		}
		if fs.NArg() == 0 {
			break
		}
		rest = fs.Args()[1:]
	}

	if selfTest {
		f.SelfTest = true
	}
	return f, nil
}

// hasSelfTestFlag reports whether -ci or -test (one or two dashes) is set
// anywhere in args.
func hasSelfTestFlag(args []string) bool {
	for _, a := range args {
		if !strings.HasPrefix(a, "-") {
			continue
		}
		name, value, hasValue := strings.Cut(strings.TrimPrefix(strings.TrimPrefix(a, "-"), "-"), "=")
		if name != "ci" && name != "test" {
			continue
		}
		if !hasValue {
			return true
		}
		if on, err := strconv.ParseBool(value); err == nil && on {
			return true
		}
	}
	return false
}

// loadConfig layers defaults, the config file and flag overrides.
func loadConfig(f Flags) (config.Config, error) {
	cfg := config.Default()
	if f.ConfigFile != "" {
		var err error
		cfg, err = config.Load(f.ConfigFile)
		if err != nil {
			return config.Config{}, err
		}
	}

	if f.EEPROMFile != "" {
		cfg.EEPROMFile = f.EEPROMFile
	}
	if f.TraceFile != "" {
		cfg.TraceFile = f.TraceFile
	}
	if f.LogLevel != "" {
		cfg.LogLevel = f.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// setupTracing builds the trace sink: a CBOR file when configured, plus the
// slog adapter so traces show up at debug level.
func setupTracing(cfg config.Config, logger *slog.Logger) (log.Logger, func(), error) {
	loggers := []log.Logger{log.NewSlogAdapter(logger)}
	closeFn := func() {}

	if cfg.TraceFile != "" {
		fl, err := log.NewFileLogger(cfg.TraceFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open trace file: %w", err)
		}
		loggers = append(loggers, fl)
		closeFn = func() {
			if err := fl.Close(); err != nil {
				logger.Warn("failed to close trace file", "error", err)
			}
		}
	}

	return log.NewMultiLogger(loggers...), closeFn, nil
}

// terminal is the console input and output of an interactive session.
type terminal struct {
	prompter sim.Prompter
	out      io.Writer
	errOut   io.Writer
	close    func()
}

// setupInput uses readline when stdin is a terminal and a plain line reader
// otherwise, so piped sessions are read verbatim. With readline, output and
// logs go through its writers so they do not garble the prompt.
func setupInput(stdin io.Reader, stdout, stderr io.Writer) (terminal, error) {
	if f, ok := stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		rp, err := interactive.NewReadlinePrompter()
		if err != nil {
			return terminal{}, err
		}
		return terminal{
			prompter: rp,
			out:      rp.Stdout(),
			errOut:   rp.Stderr(),
			close:    func() { rp.Close() },
		}, nil
	}
	return terminal{
		prompter: sim.NewLinePrompter(stdin, stdout),
		out:      stdout,
		errOut:   stderr,
		close:    func() {},
	}, nil
}
