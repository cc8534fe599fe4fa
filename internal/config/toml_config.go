package config

import (
	"bytes"

	"github.com/pelletier/go-toml/v2"
)

// parseTOML reads the TOML form. Fields absent from the document keep their
// defaults:
//
//	[engine]
//	ambiguity = "specificity"
//
//	[[family]]
//	category = "OPAMP"
//	name = "precision dual"
//	members = ["OPA2277", "OP297"]
func parseTOML(content []byte) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ToTOML renders the effective configuration, as shown by `config show`.
func (c *Config) ToTOML() ([]byte, error) {
	return toml.Marshal(c)
}
