package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/mpnkit/internal/config"
)

// run executes the CLI in-process against an empty project directory and returns
// what it wrote.
func run(t *testing.T, dir string, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	app.Reader = strings.NewReader(stdin)

	argv := append([]string{"mpnkit", "--dir", dir, "--no-color"}, args...)
	err := app.Run(argv)
	return out.String(), err
}

func TestClassifyCommand(t *testing.T) {
	out, err := run(t, t.TempDir(), "", "classify", "AOD4184A", "XJ9999")
	require.NoError(t, err)
	assert.Contains(t, out, "MOSFET_AOS")
	assert.Contains(t, out, "XJ9999  unrecognized")

	out, err = run(t, t.TempDir(), "", "--json", "classify", "LM358N")
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "LM358N", decoded["mpn"])

	_, err = run(t, t.TempDir(), "", "classify")
	require.Error(t, err)
	assert.ErrorIs(t, err, errUsage)
}

func TestCompareCommand(t *testing.T) {
	out, err := run(t, t.TempDir(), "", "--compact", "compare", "LM358N", "MC1458")
	require.NoError(t, err)
	assert.Equal(t, "LM358N MC1458 0.90 high\n", out)

	_, err = run(t, t.TempDir(), "", "compare", "LM358N")
	assert.ErrorIs(t, err, errUsage)
}

func TestReplaceCommand(t *testing.T) {
	out, err := run(t, t.TempDir(), "", "replace", "--both", "UHS1E101MPD", "UHW1E101MPD")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ UHS1E101MPD can replace UHW1E101MPD")
	assert.Contains(t, out, "✗ UHW1E101MPD cannot replace UHS1E101MPD")
	assert.Contains(t, out, "[ordered]")
}

func TestExtractCommand(t *testing.T) {
	out, err := run(t, t.TempDir(), "", "--compact", "extract", "Swap the LM358N op-amp for an MC1458.")
	require.NoError(t, err)
	assert.Equal(t, "LM358N\nMC1458\n", out)

	out, err = run(t, t.TempDir(), "Use AOD4184A on the load switch.", "--compact", "extract")
	require.NoError(t, err)
	assert.Equal(t, "AOD4184A\n", out)

	out, err = run(t, t.TempDir(), "", "extract", "nothing to see here")
	require.NoError(t, err)
	assert.Equal(t, "No part numbers found\n", out)
}

func TestSuggestCommand(t *testing.T) {
	out, err := run(t, t.TempDir(), "", "--compact", "suggest", "--limit", "3", "LN358")
	require.NoError(t, err)
	assert.Contains(t, strings.Split(strings.TrimSpace(out), "\n"), "LM358")
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	list := filepath.Join(dir, "bom.txt")
	require.NoError(t, os.WriteFile(list, []byte("# bill of materials\nLM358N\n\nXJ9999  # unknown\n1N4007\n"), 0o644))
	metricsFile := filepath.Join(dir, "metrics.prom")

	out, err := run(t, dir, "", "batch", "--metrics-file", metricsFile, list)
	require.NoError(t, err)
	assert.Contains(t, out, "2 of 3 recognized")

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `mpnkit_classifications_total{base_type="OPAMP",outcome="recognized"} 1`)

	out, err = run(t, dir, "LM358N\nAOD4184A\n", "--compact", "batch", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "LM358N OPAMP_TI")
}

func TestParseLines(t *testing.T) {
	assert.Equal(t, []string{"LM358N", "MC1458"}, parseLines("  LM358N \n# comment\n\nMC1458 # dual\n"))
	assert.Empty(t, parseLines("\n#\n"))
}

func TestStatsCommand(t *testing.T) {
	out, err := run(t, t.TempDir(), "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "RULES BY BASE TYPE")

	out, err = run(t, t.TempDir(), "", "--json", "stats")
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Contains(t, decoded, "handlers")
}

func TestConfigCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "", "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, config.KDLFileName)
	assert.FileExists(t, filepath.Join(dir, config.KDLFileName))

	_, err = run(t, dir, "", "config", "init")
	assert.Error(t, err)
	_, err = run(t, dir, "", "config", "init", "--force")
	assert.NoError(t, err)

	out, err = run(t, dir, "", "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ validate")

	out, err = run(t, dir, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "suggest_limit = 5")

	tomlDir := t.TempDir()
	_, err = run(t, tomlDir, "", "config", "init", "--format", "toml")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(tomlDir, config.TOMLFileName))

	_, err = run(t, t.TempDir(), "", "config", "init", "--format", "yaml")
	assert.Error(t, err)
}

func TestConfigValidateReportsBadPatterns(t *testing.T) {
	dir := t.TempDir()
	bad := "version = 1\n\n[[pattern]]\ntype = \"OPAMP\"\nregex = \"(\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.TOMLFileName), []byte(bad), 0o644))

	out, err := run(t, dir, "", "config", "validate")
	require.Error(t, err)
	assert.Contains(t, out, "✗ validate")

	// Every other command refuses to build an engine from it.
	_, err = run(t, dir, "", "classify", "LM358N")
	assert.Error(t, err)
}

func TestConfiguredPatternReachesCommands(t *testing.T) {
	dir := t.TempDir()
	cfg := "version = 1\n\n[[pattern]]\ntype = \"OPAMP\"\nregex = \"^XJ\\\\d{4}\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.TOMLFileName), []byte(cfg), 0o644))

	out, err := run(t, dir, "", "--compact", "classify", "XJ9999")
	require.NoError(t, err)
	assert.Contains(t, out, "XJ9999 OPAMP")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, t.TempDir(), "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "mpnkit "))
}
