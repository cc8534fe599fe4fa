package config

import (
	"fmt"
	"runtime"
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/standardbeagle/mpnkit/internal/errors"
	"github.com/standardbeagle/mpnkit/internal/handlers"
	"github.com/standardbeagle/mpnkit/internal/patterns"
	"github.com/standardbeagle/mpnkit/internal/types"
)

// Validator validates configuration and sets smart defaults
type Validator struct{}

// NewValidator creates a new configuration validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAndSetDefaults validates configuration and applies smart defaults. Every
// problem found is reported, collected into a MultiError.
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	var errs []error

	if err := v.validateEngineConfig(&cfg.Engine); err != nil {
		errs = append(errs, err)
	}
	if err := v.validateLoggingConfig(cfg); err != nil {
		errs = append(errs, err)
	}
	for i := range cfg.Families {
		if err := v.validateFamily(&cfg.Families[i]); err != nil {
			errs = append(errs, err)
		}
	}
	errs = append(errs, v.validatePatterns(cfg.Patterns)...)

	if err := errors.NewMultiError(errs).ErrorOrNil(); err != nil {
		return err
	}

	v.setSmartDefaults(cfg)
	return nil
}

// validateEngineConfig validates engine configuration
func (v *Validator) validateEngineConfig(e *Engine) error {
	if _, err := handlers.ParsePolicy(e.Ambiguity); err != nil {
		return err
	}
	if e.CacheSize < 0 {
		return errors.NewConfigError("engine.cache_size", fmt.Sprint(e.CacheSize), errors.New("cannot be negative"))
	}
	// Workers: 0 means auto-detect (will be set by smart defaults)
	if e.Workers < 0 {
		return errors.NewConfigError("engine.workers", fmt.Sprint(e.Workers), errors.New("cannot be negative"))
	}
	if e.SuggestLimit < 0 {
		return errors.NewConfigError("engine.suggest_limit", fmt.Sprint(e.SuggestLimit), errors.New("cannot be negative"))
	}
	if e.FuzzyThreshold < 0 || e.FuzzyThreshold > 1 {
		return errors.NewConfigError("engine.fuzzy_threshold", fmt.Sprint(e.FuzzyThreshold), errors.New("must be between 0 and 1"))
	}
	return nil
}

// validateLoggingConfig validates logging configuration
func (v *Validator) validateLoggingConfig(cfg *Config) error {
	if cfg.Logging.Level != "" {
		if _, err := zapcore.ParseLevel(strings.ToLower(cfg.Logging.Level)); err != nil {
			return errors.NewConfigError("logging.level", cfg.Logging.Level, err)
		}
	}
	switch strings.ToLower(cfg.Logging.Format) {
	case "", "console", "json":
		return nil
	}
	return errors.NewConfigError("logging.format", cfg.Logging.Format, errors.New("expected console or json"))
}

// validateFamily checks the category and normalizes member prefixes to the form
// series are compared in.
func (v *Validator) validateFamily(f *Family) error {
	field := "family"
	if f.Source != "" {
		field = "family_files"
	}

	t, ok := types.ParseComponentType(f.Category)
	if !ok {
		return errors.NewConfigError(field, f.Category, errors.Wrapf(errors.ErrUnknownType, "family %q", f.Name))
	}
	if t.IsQualified() {
		return errors.NewConfigError(field, f.Category, errors.Newf("family %q: category must be a base type such as %s", f.Name, t.Base()))
	}
	if strings.TrimSpace(f.Name) == "" {
		return errors.NewConfigError(field, f.Category, errors.New("family name cannot be empty"))
	}
	if len(f.Members) == 0 {
		return errors.NewConfigError(field, f.Name, errors.New("family has no members"))
	}

	f.Category = string(t)
	for i, m := range f.Members {
		f.Members[i] = strings.ToUpper(strings.TrimSpace(m))
		if f.Members[i] == "" {
			return errors.NewConfigError(field, f.Name, errors.Newf("member %d is empty", i))
		}
	}
	return nil
}

// validatePatterns compiles every pattern into a scratch registry so type and
// regex problems surface as PatternErrors.
func (v *Validator) validatePatterns(ps []Pattern) []error {
	var errs []error
	scratch := patterns.New()
	for i := range ps {
		t, ok := types.ParseComponentType(ps[i].Type)
		if !ok {
			errs = append(errs, errors.NewPatternError(ps[i].Type, ps[i].Regex, errors.ErrUnknownType))
			continue
		}
		ps[i].Type = string(t)
		if err := scratch.Register(t, ps[i].Regex); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// setSmartDefaults applies smart defaults based on system capabilities
func (v *Validator) setSmartDefaults(cfg *Config) {
	// Use cores-1 to leave headroom for the system, minimum of 1
	if cfg.Engine.Workers == 0 {
		cfg.Engine.Workers = max(1, runtime.NumCPU()-1)
	}
	if cfg.Engine.Ambiguity == "" {
		cfg.Engine.Ambiguity = DefaultAmbiguity
	}
	if cfg.Engine.SuggestLimit == 0 {
		cfg.Engine.SuggestLimit = DefaultSuggestLimit
	}
	if cfg.Engine.FuzzyThreshold == 0 {
		cfg.Engine.FuzzyThreshold = DefaultFuzzyThreshold
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "warn"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Version == 0 {
		cfg.Version = 1
	}
}

// ValidateConfig is a convenience function for quick validation
func ValidateConfig(cfg *Config) error {
	validator := NewValidator()
	return validator.ValidateAndSetDefaults(cfg)
}
