package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/mpnkit/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseKDL_Defaults(t *testing.T) {
	cfg, err := parseKDL("")
	require.NoError(t, err)

	assert.Equal(t, "registration", cfg.Engine.Ambiguity)
	assert.Equal(t, 0, cfg.Engine.CacheSize)
	assert.Equal(t, 5, cfg.Engine.SuggestLimit)
	assert.Equal(t, 0.7, cfg.Engine.FuzzyThreshold)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Empty(t, cfg.Families)
	assert.Empty(t, cfg.Patterns)
}

func TestParseKDL_AllSections(t *testing.T) {
	content := `
version 1
engine {
    ambiguity "specificity"
    cache_size 1024
    workers 3
    suggest_limit 8
    fuzzy_threshold 0.85
}
logging {
    level "debug"
    format "json"
    development true
}
family "OPAMP" "precision dual" {
    members "OPA2277" "OP297"
}
family "SENSOR" "HTU2x" "HTU21" "HTU20"
pattern "OPAMP" "^OP\\d{2,3}"
family_files "families/*.yaml" "shared/**/*.yaml"
`
	cfg, err := parseKDL(content)
	require.NoError(t, err)

	assert.Equal(t, Engine{Ambiguity: "specificity", CacheSize: 1024, Workers: 3, SuggestLimit: 8, FuzzyThreshold: 0.85}, cfg.Engine)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Logging.Development)

	require.Len(t, cfg.Families, 2)
	assert.Equal(t, Family{Category: "OPAMP", Name: "precision dual", Members: []string{"OPA2277", "OP297"}}, cfg.Families[0])
	assert.Equal(t, []string{"HTU21", "HTU20"}, cfg.Families[1].Members)

	require.Len(t, cfg.Patterns, 1)
	assert.Equal(t, Pattern{Type: "OPAMP", Regex: `^OP\d{2,3}`}, cfg.Patterns[0])
	assert.Equal(t, []string{"families/*.yaml", "shared/**/*.yaml"}, cfg.FamilyFiles)
}

func TestParseKDL_Errors(t *testing.T) {
	_, err := parseKDL(`engine {`)
	assert.Error(t, err)

	_, err = parseKDL(`family "OPAMP"`)
	assert.Error(t, err)

	_, err = parseKDL(`pattern "OPAMP"`)
	assert.Error(t, err)
}

func TestParseTOML(t *testing.T) {
	content := `
version = 1
family_files = ["families/*.yaml"]

[engine]
ambiguity = "specificity"
cache_size = 256

[logging]
level = "info"

[[family]]
category = "OPAMP"
name = "precision dual"
members = ["OPA2277", "OP297"]

[[pattern]]
type = "SENSOR"
regex = "^HTU2\\d"
`
	cfg, err := parseTOML([]byte(content))
	require.NoError(t, err)

	assert.Equal(t, "specificity", cfg.Engine.Ambiguity)
	assert.Equal(t, 256, cfg.Engine.CacheSize)
	assert.Equal(t, 5, cfg.Engine.SuggestLimit, "absent fields keep defaults")
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	require.Len(t, cfg.Families, 1)
	assert.Equal(t, []string{"OPA2277", "OP297"}, cfg.Families[0].Members)
	assert.Equal(t, `^HTU2\d`, cfg.Patterns[0].Regex)

	_, err = parseTOML([]byte("[engine]\nunknown_key = 1\n"))
	assert.Error(t, err)
}

func TestToTOMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Families = []Family{{Category: "OPAMP", Name: "x", Members: []string{"A1"}}}

	out, err := cfg.ToTOML()
	require.NoError(t, err)

	back, err := parseTOML(out)
	require.NoError(t, err)
	assert.Equal(t, cfg.Engine, back.Engine)
	assert.Equal(t, cfg.Families, back.Families)
}

func TestLoadFileAndDir(t *testing.T) {
	dir := t.TempDir()

	cfg, err := loadDir(dir)
	require.NoError(t, err)
	assert.Nil(t, cfg, "no config file")

	writeFile(t, dir, TOMLFileName, "[engine]\ncache_size = 10\n")
	cfg, err = loadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Engine.CacheSize)

	// KDL wins when both exist
	writeFile(t, dir, KDLFileName, "engine {\n    cache_size 20\n}\n")
	cfg, err = loadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Engine.CacheSize)
	assert.Equal(t, dir, cfg.Root)

	bad := writeFile(t, dir, "bad.kdl", "engine {")
	_, err = LoadFile(bad)
	var cfgErr *errors.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "file", cfgErr.Field)

	_, err = LoadFile(filepath.Join(dir, "missing.kdl"))
	assert.Error(t, err)
}

func TestLoadWithHomeBase(t *testing.T) {
	home := t.TempDir()
	project := t.TempDir()
	t.Setenv("HOME", home)

	writeFile(t, home, KDLFileName, `
engine {
    cache_size 100
}
family "OPAMP" "base" "A1"
family_files "common/*.yaml"
`)
	writeFile(t, project, KDLFileName, `
engine {
    cache_size 5
}
family "OPAMP" "base" "A1"
family "OPAMP" "project" "B1"
`)

	cfg, err := Load(project)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Engine.CacheSize, "project overrides base")
	require.Len(t, cfg.Families, 2)
	assert.Equal(t, "base", cfg.Families[0].Name)
	assert.Equal(t, "project", cfg.Families[1].Name)
	assert.Equal(t, []string{filepath.Join(home, "common/*.yaml")}, cfg.FamilyFiles)

	// no project file: base only
	empty := t.TempDir()
	cfg, err = Load(empty)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Engine.CacheSize)
}

func TestLoadDefaultsWithoutFiles(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Root)
	assert.Equal(t, Default().Engine, cfg.Engine)
}

func TestDefaultKDLParses(t *testing.T) {
	cfg, err := parseKDL(DefaultKDL)
	require.NoError(t, err)
	assert.Equal(t, Default().Engine, cfg.Engine)
	assert.Equal(t, "stderr", cfg.Logging.OutputPath)
	require.NoError(t, ValidateConfig(cfg))
}
