// Package config loads mpnkit settings from .mpnkit.kdl or .mpnkit.toml, plus
// optional YAML family files. Configuration only adds to the built-in tables: extra
// equivalence families, extra recognition patterns and engine tuning.
package config

import (
	"os"
	"path/filepath"

	"github.com/standardbeagle/mpnkit/internal/errors"
	"github.com/standardbeagle/mpnkit/internal/logging"
)

// File names searched for, in order.
const (
	KDLFileName  = ".mpnkit.kdl"
	TOMLFileName = ".mpnkit.toml"
)

// Engine defaults
const (
	DefaultAmbiguity      = "registration"
	DefaultSuggestLimit   = 5
	DefaultFuzzyThreshold = 0.7
)

type Config struct {
	Version int `toml:"version"`
	// Root is the directory the config was loaded from; family file globs resolve
	// against it.
	Root string `toml:"-"`

	Engine  Engine         `toml:"engine"`
	Logging logging.Config `toml:"logging"`

	Families    []Family  `toml:"family"`
	Patterns    []Pattern `toml:"pattern"`
	FamilyFiles []string  `toml:"family_files"`
}

type Engine struct {
	// Ambiguity is the dispatch policy: "registration" or "specificity"
	Ambiguity string `toml:"ambiguity"`
	// CacheSize of the classification cache; 0 disables it
	CacheSize int `toml:"cache_size"`
	// Workers for batch classification; 0 = auto-detect (NumCPU-1)
	Workers        int     `toml:"workers"`
	SuggestLimit   int     `toml:"suggest_limit"`
	FuzzyThreshold float64 `toml:"fuzzy_threshold"`
}

// Family adds an equivalence family to the calculator for Category, a base type
// name such as OPAMP.
type Family struct {
	Category string   `toml:"category" yaml:"category"`
	Name     string   `toml:"name" yaml:"name"`
	Members  []string `toml:"members" yaml:"members"`
	// Source is the file the family was read from, for error messages
	Source string `toml:"-" yaml:"-"`
}

// Pattern adds a recognition rule served by the custom handler.
type Pattern struct {
	Type  string `toml:"type"`
	Regex string `toml:"regex"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: 1,
		Root:    ".",
		Engine: Engine{
			Ambiguity:      DefaultAmbiguity,
			SuggestLimit:   DefaultSuggestLimit,
			FuzzyThreshold: DefaultFuzzyThreshold,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load reads configuration for dir: a global base from the home directory merged
// with the project file in dir. Missing files are not an error.
func Load(dir string) (*Config, error) {
	if dir == "" {
		dir = "."
	}

	var base *Config
	if home, err := os.UserHomeDir(); err == nil && filepath.Clean(home) != filepath.Clean(dir) {
		cfg, err := loadDir(home)
		if err != nil {
			return nil, err
		}
		base = cfg
	}

	project, err := loadDir(dir)
	if err != nil {
		return nil, err
	}

	var cfg *Config
	switch {
	case base != nil && project != nil:
		cfg = mergeConfigs(base, project)
	case project != nil:
		cfg = project
	case base != nil:
		cfg = base
	default:
		cfg = Default()
		cfg.Root = dir
	}
	return cfg, nil
}

// LoadFile reads one explicit config file, choosing the format by extension.
func LoadFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError("file", path, err)
	}

	var cfg *Config
	switch filepath.Ext(path) {
	case ".toml":
		cfg, err = parseTOML(content)
	default:
		cfg, err = parseKDL(string(content))
	}
	if err != nil {
		return nil, errors.NewConfigError("file", path, err)
	}
	cfg.Root = filepath.Dir(path)
	return cfg, nil
}

// loadDir returns nil, nil when dir holds no config file.
func loadDir(dir string) (*Config, error) {
	for _, name := range []string{KDLFileName, TOMLFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return LoadFile(path)
	}
	return nil, nil
}

// mergeConfigs lets the project override base settings. Families, patterns and
// family files from both are kept, base first, without duplicates.
func mergeConfigs(base, project *Config) *Config {
	merged := *project

	seenFamily := make(map[string]bool)
	merged.Families = nil
	for _, f := range append(append([]Family(nil), base.Families...), project.Families...) {
		key := f.Category + "\x00" + f.Name
		if seenFamily[key] {
			continue
		}
		seenFamily[key] = true
		merged.Families = append(merged.Families, f)
	}

	seenPattern := make(map[Pattern]bool)
	merged.Patterns = nil
	for _, p := range append(append([]Pattern(nil), base.Patterns...), project.Patterns...) {
		if !seenPattern[p] {
			seenPattern[p] = true
			merged.Patterns = append(merged.Patterns, p)
		}
	}

	// Base globs resolve against the base directory
	merged.FamilyFiles = nil
	seenFile := make(map[string]bool)
	for _, g := range base.FamilyFiles {
		if !filepath.IsAbs(g) {
			g = filepath.Join(base.Root, g)
		}
		if !seenFile[g] {
			seenFile[g] = true
			merged.FamilyFiles = append(merged.FamilyFiles, g)
		}
	}
	for _, g := range project.FamilyFiles {
		if !seenFile[g] {
			seenFile[g] = true
			merged.FamilyFiles = append(merged.FamilyFiles, g)
		}
	}

	return &merged
}
