package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/JosephJonathanFernandes/embedded-menu/pkg/log"
)

// RunExport exports the trace file to the specified format.
// An empty output writes to w.
func RunExport(path, format, output string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "run_id", "scenario", "category", "detail", "value"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		detail, value := "", ""
		switch {
		case event.StateChange != nil:
			detail = event.StateChange.Entity.String()
			value = event.StateChange.NewState
		case event.Register != nil:
			detail = event.Register.Op.String()
			value = fmt.Sprintf("0x%02X", event.Register.After)
		case event.Storage != nil:
			detail = event.Storage.Op.String()
			value = strconv.Itoa(int(event.Storage.Value))
		case event.Input != nil:
			detail = "input"
			value = strconv.Itoa(event.Input.Length)
		case event.Error != nil:
			detail = event.Error.Context
			value = event.Error.Message
		}

		row := []string{
			event.Timestamp.UTC().Format(timestampLayout),
			event.RunID,
			event.Scenario.String(),
			event.Category.String(),
			detail,
			value,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return cw.Error()
}
