package config

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/mpnkit/internal/errors"
)

func TestValidateAndSetDefaults(t *testing.T) {
	cfg := Default()
	cfg.Engine.SuggestLimit = 0
	cfg.Engine.FuzzyThreshold = 0
	cfg.Logging.Level = ""
	cfg.Families = []Family{{Category: "opamp", Name: "precision dual", Members: []string{" opa2277 ", "OP297"}}}
	cfg.Patterns = []Pattern{{Type: "sensor", Regex: `^HTU2\d`}}

	require.NoError(t, NewValidator().ValidateAndSetDefaults(cfg))

	assert.Equal(t, max(1, runtime.NumCPU()-1), cfg.Engine.Workers)
	assert.Equal(t, DefaultSuggestLimit, cfg.Engine.SuggestLimit)
	assert.Equal(t, DefaultFuzzyThreshold, cfg.Engine.FuzzyThreshold)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "OPAMP", cfg.Families[0].Category)
	assert.Equal(t, []string{"OPA2277", "OP297"}, cfg.Families[0].Members)
	assert.Equal(t, "SENSOR", cfg.Patterns[0].Type)
}

func TestValidateEngineConfig(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name  string
		eng   Engine
		field string
	}{
		{"bad ambiguity", Engine{Ambiguity: "random"}, "engine.ambiguity"},
		{"negative cache", Engine{CacheSize: -1}, "engine.cache_size"},
		{"negative workers", Engine{Workers: -2}, "engine.workers"},
		{"negative suggest limit", Engine{SuggestLimit: -1}, "engine.suggest_limit"},
		{"threshold above one", Engine{FuzzyThreshold: 1.5}, "engine.fuzzy_threshold"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.validateEngineConfig(&tt.eng)
			var cfgErr *errors.ConfigError
			require.True(t, errors.As(err, &cfgErr), "got %v", err)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}

	// zero values are valid: they mean auto-detect or default
	assert.NoError(t, validator.validateEngineConfig(&Engine{}))
	assert.NoError(t, validator.validateEngineConfig(&Engine{Ambiguity: "specificity", CacheSize: 10, Workers: 2}))
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "xml"
	cfg.Families = []Family{
		{Category: "FLUX_CAPACITOR", Name: "a", Members: []string{"X"}},
		{Category: "OPAMP_TI", Name: "b", Members: []string{"X"}},
		{Category: "OPAMP", Name: "c"},
		{Category: "OPAMP", Name: "", Members: []string{"X"}},
	}
	cfg.Patterns = []Pattern{{Type: "OPAMP", Regex: "^(OP"}, {Type: "BOGUS", Regex: "^X"}}

	err := ValidateConfig(cfg)
	require.Error(t, err)
	var multi *errors.MultiError
	require.True(t, errors.As(err, &multi))
	assert.Len(t, multi.Errors, 7)

	var patErr *errors.PatternError
	assert.True(t, errors.As(multi.Errors[5], &patErr))
	assert.ErrorIs(t, multi.Errors[6], errors.ErrUnknownType)
}

func TestValidateLoggingConfig(t *testing.T) {
	validator := NewValidator()

	cfg := Default()
	cfg.Logging.Level = "loud"
	err := validator.validateLoggingConfig(cfg)
	var cfgErr *errors.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "logging.level", cfgErr.Field)

	cfg.Logging.Level = "DEBUG"
	cfg.Logging.Format = "JSON"
	assert.NoError(t, validator.validateLoggingConfig(cfg))
}
