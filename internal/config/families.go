package config

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/standardbeagle/mpnkit/internal/errors"
	"github.com/standardbeagle/mpnkit/internal/version"
)

// FamilyFile is the YAML document format for shared family tables:
//
//	requires: ">= 0.2.0"
//	families:
//	  - category: OPAMP
//	    name: precision dual
//	    members: [OPA2277, OP297]
type FamilyFile struct {
	Requires string   `yaml:"requires"`
	Families []Family `yaml:"families"`
}

// ResolveFamilyFiles expands the family_files globs against the config root. Matches
// are returned sorted and de-duplicated; a glob matching nothing is not an error.
func (c *Config) ResolveFamilyFiles() ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, g := range c.FamilyFiles {
		pattern := g
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(c.Root, pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, errors.NewConfigError("family_files", g, err)
		}
		sort.Strings(matches)
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out, nil
}

// LoadFamilyFiles reads every family file and returns their families, in file order.
// Each file's `requires` constraint is checked against the running version.
func (c *Config) LoadFamilyFiles() ([]Family, error) {
	paths, err := c.ResolveFamilyFiles()
	if err != nil {
		return nil, err
	}

	var all []Family
	var errs []error
	for _, p := range paths {
		fams, err := readFamilyFile(p, version.Version)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		all = append(all, fams...)
	}
	if err := errors.NewMultiError(errs).ErrorOrNil(); err != nil {
		return nil, err
	}
	return all, nil
}

func readFamilyFile(path, running string) ([]Family, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError("family_files", path, err)
	}

	var ff FamilyFile
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, errors.NewConfigError("family_files", path, errors.Wrap(err, "invalid YAML"))
	}
	if err := checkRequires(ff.Requires, running); err != nil {
		return nil, errors.NewConfigError("family_files", path, err)
	}

	for i := range ff.Families {
		ff.Families[i].Source = path
	}
	return ff.Families, nil
}

// checkRequires reports whether running satisfies constraint. An empty constraint
// always passes.
func checkRequires(constraint, running string) error {
	if constraint == "" {
		return nil
	}
	v, err := semver.NewVersion(running)
	if err != nil {
		return errors.Wrapf(err, "invalid mpnkit version %s", running)
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return errors.Wrapf(err, "invalid version constraint %s", constraint)
	}
	if !c.Check(v) {
		return errors.Newf("requires mpnkit %s, but running %s", constraint, running)
	}
	return nil
}
