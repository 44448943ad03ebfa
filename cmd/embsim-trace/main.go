// Command embsim-trace views and analyzes the trace files written by
// embsim -trace.
//
// Usage:
//
//	embsim-trace <command> [flags] <file.trace>
//
// Commands:
//
//	view     View trace file in human-readable format
//	export   Export trace file to JSONL or CSV format
//	filter   Filter trace file and write to new file
//	stats    Show statistics about the trace file
//
// Examples:
//
//	# View only register operations of the port scenario
//	embsim-trace view -scenario port-control -category register run.trace
//
//	# Export to CSV
//	embsim-trace export -format csv -o run.csv run.trace
//
//	# Keep a single run
//	embsim-trace filter -run-id 3f2c9a10-... -o one.trace run.trace
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/JosephJonathanFernandes/embedded-menu/cmd/embsim-trace/commands"
	"github.com/JosephJonathanFernandes/embedded-menu/pkg/version"
)

const usage = `embsim-trace - Embedded Simulator Trace Analyzer

Usage:
  embsim-trace <command> [flags] <file.trace>

Commands:
  view     View trace file in human-readable format
  export   Export trace file to JSONL or CSV format
  filter   Filter trace file and write to new file
  stats    Show statistics about the trace file
  version  Print the tool version

Use "embsim-trace <command> -help" for more information about a command.
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprint(stderr, usage)
		return 1
	}

	cmd := args[0]
	args = args[1:]

	var err error
	switch cmd {
	case "view":
		err = runView(args, stdout, stderr)
	case "export":
		err = runExport(args, stdout, stderr)
	case "filter":
		err = runFilter(args, stdout, stderr)
	case "stats":
		err = runStats(args, stdout, stderr)
	case "version":
		fmt.Fprintln(stdout, version.Banner("embsim-trace"))
		return 0
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(stderr, usage)
		return 1
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		return 1
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

// errUsage reports that the flag set already printed its usage.
var errUsage = errors.New("usage")

func newFlagSet(name, summary, synopsis string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "embsim-trace %s - %s\n\nUsage:\n  embsim-trace %s\n\nFlags:\n", name, summary, synopsis)
		fs.PrintDefaults()
	}
	return fs
}

// parseArgs parses args and returns the single trace path operand.
func parseArgs(fs *flag.FlagSet, args []string, stderr io.Writer) (string, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return "", err
		}
		return "", errUsage
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(stderr, "Error: trace file path required")
		fs.Usage()
		return "", errUsage
	}
	return fs.Arg(0), nil
}

func runView(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("view", "View trace file in human-readable format", "view [flags] <file.trace>", stderr)
	scenario := fs.String("scenario", "", "Filter by scenario (e.g. traffic-light, port-control, eeprom)")
	category := fs.String("category", "", "Filter by category (state, register, storage, input, error)")

	path, err := parseArgs(fs, args, stderr)
	if err != nil {
		return err
	}

	var filter commands.ViewFilter
	if *scenario != "" {
		s, err := commands.ParseScenarioFlag(*scenario)
		if err != nil {
			return err
		}
		filter.Scenario = &s
	}
	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			return err
		}
		filter.Category = &c
	}

	return commands.RunView(path, filter, stdout)
}

func runExport(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("export", "Export trace file to JSONL or CSV format", "export [flags] <file.trace>", stderr)
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	path, err := parseArgs(fs, args, stderr)
	if err != nil {
		return err
	}
	return commands.RunExport(path, *format, *output, stdout)
}

func runFilter(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("filter", "Filter trace file and write to new file", "filter [flags] <file.trace>", stderr)
	output := fs.String("o", "", "Output file (required)")
	runID := fs.String("run-id", "", "Filter by run ID")
	scenario := fs.String("scenario", "", "Filter by scenario")
	category := fs.String("category", "", "Filter by category (state, register, storage, input, error)")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")

	path, err := parseArgs(fs, args, stderr)
	if err != nil {
		return err
	}
	if *output == "" {
		fmt.Fprintln(stderr, "Error: output file (-o) required")
		fs.Usage()
		return errUsage
	}

	n, err := commands.RunFilter(path, commands.FilterOptions{
		Output:    *output,
		RunID:     *runID,
		Scenario:  *scenario,
		Category:  *category,
		TimeStart: *timeStart,
		TimeEnd:   *timeEnd,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %d events to %s\n", n, *output)
	return nil
}

func runStats(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("stats", "Show statistics about the trace file", "stats <file.trace>", stderr)

	path, err := parseArgs(fs, args, stderr)
	if err != nil {
		return err
	}
	return commands.RunStatsCommand(path, stdout)
}
