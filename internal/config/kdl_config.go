package config

import (
	"fmt"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"

	"github.com/standardbeagle/mpnkit/internal/logging"
)

// parseKDL reads the KDL form:
//
//	engine { ambiguity "specificity"; cache_size 1024 }
//	logging { level "debug"; format "json" }
//	family "OPAMP" "precision dual" { members "OPA2277" "OP297" }
//	pattern "OPAMP" "^OP\\d{2,3}"
//	family_files "families/*.yaml"
//
// Unknown nodes are ignored.
func parseKDL(content string) (*Config, error) {
	cfg := Default()

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "version":
			if v, ok := firstIntArg(n); ok {
				cfg.Version = v
			}
		case "engine":
			parseEngineNode(n, &cfg.Engine)
		case "logging":
			parseLoggingNode(n, &cfg.Logging)
		case "family":
			f, err := parseFamilyNode(n)
			if err != nil {
				return nil, err
			}
			cfg.Families = append(cfg.Families, f)
		case "pattern":
			args := collectStringArgs(n)
			if len(args) != 2 {
				return nil, fmt.Errorf("pattern node needs a type and a regex, got %d arguments", len(args))
			}
			cfg.Patterns = append(cfg.Patterns, Pattern{Type: args[0], Regex: args[1]})
		case "family_files":
			cfg.FamilyFiles = append(cfg.FamilyFiles, collectStringArgs(n)...)
		}
	}
	return cfg, nil
}

func parseEngineNode(n *document.Node, e *Engine) {
	for _, cn := range n.Children {
		switch nodeName(cn) {
		case "ambiguity":
			if s, ok := firstStringArg(cn); ok {
				e.Ambiguity = s
			}
		case "cache_size":
			if v, ok := firstIntArg(cn); ok {
				e.CacheSize = v
			}
		case "workers":
			if v, ok := firstIntArg(cn); ok {
				e.Workers = v
			}
		case "suggest_limit":
			if v, ok := firstIntArg(cn); ok {
				e.SuggestLimit = v
			}
		case "fuzzy_threshold":
			if v, ok := firstFloatArg(cn); ok {
				e.FuzzyThreshold = v
			}
		}
	}
}

func parseLoggingNode(n *document.Node, l *logging.Config) {
	for _, cn := range n.Children {
		assignSimpleString(cn, "level", func(v string) { l.Level = v })
		assignSimpleString(cn, "format", func(v string) { l.Format = v })
		assignSimpleString(cn, "output", func(v string) { l.OutputPath = v })
		if nodeName(cn) == "development" {
			if b, ok := firstBoolArg(cn); ok {
				l.Development = b
			}
		}
	}
}

// parseFamilyNode accepts members inline or as a child node:
//
//	family "SENSOR" "SHT3x" { members "SHT30" "SHT31" }
func parseFamilyNode(n *document.Node) (Family, error) {
	args := collectStringArgs(n)
	if len(args) < 2 {
		return Family{}, fmt.Errorf("family node needs a category and a name")
	}
	f := Family{Category: args[0], Name: args[1], Members: args[2:]}
	for _, cn := range n.Children {
		if nodeName(cn) == "members" {
			f.Members = append(f.Members, collectStringArgs(cn)...)
		}
	}
	return f, nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

func firstFloatArg(n *document.Node) (float64, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		logging.Logger.Warnw("invalid float value in KDL config", "node", nodeName(n), "type", fmt.Sprintf("%T", v))
		return 0, false
	}
}

// collectStringArgs reads inline arguments, or child node names for the block form
// (family_files { "a/*.yaml" "b/*.yaml" }).
func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}

	if len(out) == 0 && len(n.Children) > 0 {
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

func assignSimpleString(n *document.Node, target string, set func(string)) {
	if nodeName(n) == target {
		if s, ok := firstStringArg(n); ok {
			set(s)
		}
	}
}
