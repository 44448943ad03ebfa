package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JosephJonathanFernandes/embedded-menu/pkg/config"
	"github.com/JosephJonathanFernandes/embedded-menu/pkg/log"
	"github.com/JosephJonathanFernandes/embedded-menu/pkg/sim"
	"github.com/JosephJonathanFernandes/embedded-menu/pkg/version"
)

func runCmd(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestSelfTestFlags(t *testing.T) {
	for _, flagName := range []string{"--ci", "--test", "-ci", "-test"} {
		t.Run(flagName, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "eeprom.bin")

			code, out, _ := runCmd(t, "", flagName, "-eeprom", path)

			assert.Equal(t, 0, code)
			assert.Contains(t, out, "All self-tests completed successfully.")
			assert.NotContains(t, out, "Embedded System Simulation Menu")

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Len(t, data, 4)
		})
	}
}

func TestSelfTestFlagFoundAnywhere(t *testing.T) {
	tests := []struct {
		name string
		args func(path string) []string
	}{
		{"after positional", func(p string) []string { return []string{"extra", "--ci", "-eeprom", p} }},
		{"flag after positional", func(p string) []string { return []string{"-eeprom", p, "extra", "-test"} }},
		{"after unknown flag", func(p string) []string { return []string{"-bogus", "--ci", "-eeprom", p} }},
		{"after bad syntax", func(p string) []string { return []string{"---x", "-eeprom", p, "-ci=true"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "eeprom.bin")

			code, out, _ := runCmd(t, "0\n", tt.args(path)...)

			assert.Equal(t, 0, code)
			assert.Contains(t, out, "All self-tests completed successfully.")
			assert.NotContains(t, out, "Embedded System Simulation Menu")
			assert.FileExists(t, path)
		})
	}
}

func TestSelfTestFlagDisabled(t *testing.T) {
	code, out, _ := runCmd(t, "0\n", "-ci=false", "-eeprom", filepath.Join(t.TempDir(), "eeprom.bin"))

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Embedded System Simulation Menu")
	assert.NotContains(t, out, "[ci]")
}

func TestHasSelfTestFlag(t *testing.T) {
	assert.True(t, hasSelfTestFlag([]string{"x", "--test"}))
	assert.True(t, hasSelfTestFlag([]string{"-ci=1"}))
	assert.False(t, hasSelfTestFlag([]string{"ci", "test"}))
	assert.False(t, hasSelfTestFlag([]string{"--ci=false"}))
	assert.False(t, hasSelfTestFlag([]string{"-config", "ci.yaml"}))
	assert.False(t, hasSelfTestFlag(nil))
}

func TestInteractiveNonNumericExits(t *testing.T) {
	for _, input := range []string{"abc\n", "\n"} {
		code, out, _ := runCmd(t, input+"6\n", "-eeprom", filepath.Join(t.TempDir(), "eeprom.bin"))

		assert.Equal(t, 0, code)
		assert.True(t, strings.HasSuffix(out, "Exiting...\n"), "input %q", input)
		assert.NotContains(t, out, "Invalid choice.")
	}
}

func TestSelfTestFailsWithoutWritableDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone", "eeprom.bin")

	code, out, _ := runCmd(t, "", "--ci", "-eeprom", path)

	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Self-tests FAILED.")
}

func TestInteractiveExit(t *testing.T) {
	code, out, _ := runCmd(t, "6\n0\n", "-eeprom", filepath.Join(t.TempDir(), "eeprom.bin"))

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Clear bit 2: 0x8")
	assert.True(t, strings.HasSuffix(out, "Exiting...\n"))
}

func TestInteractiveEndOfInputExitsZero(t *testing.T) {
	code, out, _ := runCmd(t, "", "-eeprom", filepath.Join(t.TempDir(), "eeprom.bin"))

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Input error, exiting.")
}

func TestVersionFlag(t *testing.T) {
	code, out, _ := runCmd(t, "", "-version")

	assert.Equal(t, 0, code)
	assert.Equal(t, version.Banner("embsim")+"\n", out)
}

func TestUnknownFlag(t *testing.T) {
	code, _, errOut := runCmd(t, "", "-bogus")

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "bogus")
}

func TestHelpFlag(t *testing.T) {
	code, _, errOut := runCmd(t, "", "-h")

	assert.Equal(t, 0, code)
	assert.Contains(t, errOut, "-eeprom")
}

func TestBadConfig(t *testing.T) {
	code, _, errOut := runCmd(t, "", "-config", filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "failed to read file")
}

func TestLoadConfigLayering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "embsim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("eeprom_file: from-file.bin\nlog_level: info\n"), 0644))

	cfg, err := loadConfig(Flags{ConfigFile: path, LogLevel: "debug"})
	require.NoError(t, err)
	assert.Equal(t, "from-file.bin", cfg.EEPROMFile)
	assert.Equal(t, "debug", cfg.LogLevel)

	cfg, err = loadConfig(Flags{ConfigFile: path, EEPROMFile: "flag.bin"})
	require.NoError(t, err)
	assert.Equal(t, "flag.bin", cfg.EEPROMFile)
	assert.Equal(t, "info", cfg.LogLevel)

	cfg, err = loadConfig(Flags{})
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = loadConfig(Flags{LogLevel: "loud"})
	assert.Error(t, err)
}

func TestTraceFileRecordsRun(t *testing.T) {
	dir := t.TempDir()
	tracePath := filepath.Join(dir, "run.trace")

	code, _, _ := runCmd(t, "", "--ci", "-eeprom", filepath.Join(dir, "eeprom.bin"), "-trace", tracePath)
	require.Equal(t, 0, code)

	reader, err := log.NewReader(tracePath)
	require.NoError(t, err)
	defer reader.Close()

	scenarios := map[log.Scenario]int{}
	runIDs := map[string]bool{}
	for {
		ev, err := reader.Next()
		if err != nil {
			break
		}
		scenarios[ev.Scenario]++
		runIDs[ev.RunID] = true
	}

	assert.Len(t, runIDs, 1)
	assert.Equal(t, 3, scenarios[log.ScenarioTrafficLight])
	assert.Equal(t, 4, scenarios[log.ScenarioPortControl])
	assert.Equal(t, 2, scenarios[log.ScenarioEEPROM])
	assert.Equal(t, 2, scenarios[log.ScenarioSelfTest])
}

func TestSetupInputPiped(t *testing.T) {
	var stdout, stderr bytes.Buffer

	term, err := setupInput(strings.NewReader("4\n"), &stdout, &stderr)
	require.NoError(t, err)
	defer term.close()

	assert.IsType(t, &sim.LinePrompter{}, term.prompter)
	assert.Same(t, &stdout, term.out)
	assert.Same(t, &stderr, term.errOut)

	line, err := term.prompter.Prompt("> ")
	require.NoError(t, err)
	assert.Equal(t, "4", line)
	assert.Equal(t, "> ", stdout.String())
}

func TestInteractiveLogsGoToStderr(t *testing.T) {
	code, out, errOut := runCmd(t, "0\n", "-log-level", "info", "-eeprom", filepath.Join(t.TempDir(), "eeprom.bin"))

	assert.Equal(t, 0, code)
	assert.Contains(t, errOut, "embsim starting")
	assert.NotContains(t, out, "embsim starting")
}
