// Package mcp serves the engine over the Model Context Protocol on stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/standardbeagle/mpnkit/internal/engine"
	"github.com/standardbeagle/mpnkit/internal/errors"
	"github.com/standardbeagle/mpnkit/internal/mpn"
	"github.com/standardbeagle/mpnkit/internal/types"
	"github.com/standardbeagle/mpnkit/internal/version"
)

// maxBatch bounds classify_batch so one call cannot pin the server.
const maxBatch = 1000

// Server exposes classify, compare, can_replace, extract and suggest as MCP tools.
type Server struct {
	engine *engine.Engine
	server *mcp.Server
	logger *zap.Logger
}

type InfoParams struct {
	Tool string `json:"tool,omitempty"`
}

type ClassifyParams struct {
	MPN *string `json:"mpn"`
}

type CompareParams struct {
	A string `json:"a"`
	B string `json:"b"`
}

type CanReplaceParams struct {
	Candidate string `json:"candidate"`
	Original  string `json:"original"`
}

type ExtractParams struct {
	Text string `json:"text"`
}

type SuggestParams struct {
	MPN   string `json:"mpn"`
	Limit int    `json:"limit,omitempty"`
}

type BatchParams struct {
	MPNs []string `json:"mpns"`
}

// ExtractedPart is a part number found in text, with its classification.
type ExtractedPart struct {
	mpn.Candidate
	Types   []types.ComponentType `json:"types"`
	Primary types.ComponentType   `json:"primary,omitempty"`
	Handler string                `json:"handler,omitempty"`
}

// NewServer registers the tools on a fresh MCP server. A nil engine uses the shared
// default engine.
func NewServer(e *engine.Engine, logger *zap.Logger) (*Server, error) {
	if e == nil {
		e = engine.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		engine: e,
		logger: logger,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "mpnkit",
			Version: version.Version,
		}, nil),
	}
	s.registerTools()
	return s, nil
}

func mpnSchema(description string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Description: description}
}

func (s *Server) registerTools() {
	s.server.AddTool(&mcp.Tool{
		Name:        "info",
		Description: "Overview of the mpnkit tools, or usage for one tool. Use 'info version' for build info.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"tool": {Type: "string", Description: "Tool name, or 'version'"},
			},
		},
	}, s.handleInfo)

	s.server.AddTool(&mcp.Tool{
		Name:        "classify",
		Description: "Classify a manufacturer part number: component types, manufacturer, package, series and decoded attributes. Unrecognized parts come back with near-miss suggestions.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"mpn": mpnSchema("Manufacturer part number, e.g. AOD4184A"),
			},
			Required: []string{"mpn"},
		},
	}, s.handleClassify)

	s.server.AddTool(&mcp.Tool{
		Name:        "classify_batch",
		Description: fmt.Sprintf("Classify up to %d part numbers in one call. Results keep input order.", maxBatch),
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"mpns": {Type: "array", Items: &jsonschema.Schema{Type: "string"}, Description: "Part numbers"},
			},
			Required: []string{"mpns"},
		},
	}, s.handleClassifyBatch)

	s.server.AddTool(&mcp.Tool{
		Name:        "compare",
		Description: "Similarity of two parts in [0,1]: 1.0 same series, 0.9 equivalence family, 0.7 structural match, 0.3 same category only, 0.0 different categories.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"a": mpnSchema("First part number"),
				"b": mpnSchema("Second part number"),
			},
			Required: []string{"a", "b"},
		},
	}, s.handleCompare)

	s.server.AddTool(&mcp.Tool{
		Name:        "can_replace",
		Description: "Whether candidate can stand in for original, with every violated constraint. Not symmetric: a 135 C part may replace a 105 C one, not the reverse.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"candidate": mpnSchema("Proposed replacement part number"),
				"original":  mpnSchema("Part number being replaced"),
			},
			Required: []string{"candidate", "original"},
		},
	}, s.handleCanReplace)

	s.server.AddTool(&mcp.Tool{
		Name:        "extract",
		Description: "Find part numbers in free text such as BOM notes or emails, with category hints from nearby words.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"text": {Type: "string", Description: "Free text to scan"},
			},
			Required: []string{"text"},
		},
	}, s.handleExtract)

	s.server.AddTool(&mcp.Tool{
		Name:        "suggest",
		Description: "Known part prefixes closest to a part number, best first. Useful when classify does not recognize a typo.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"mpn":   mpnSchema("Part number to match"),
				"limit": {Type: "integer", Description: "Maximum suggestions (default from engine.suggest_limit)"},
			},
			Required: []string{"mpn"},
		},
	}, s.handleSuggest)
}

// decodeParams unmarshals tool arguments. Absent arguments decode as an empty object.
func decodeParams(req *mcp.CallToolRequest, v interface{}) error {
	var raw json.RawMessage
	if req != nil && req.Params != nil {
		raw = req.Params.Arguments
	}
	if len(raw) == 0 || string(raw) == "null" {
		raw = json.RawMessage("{}")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Wrap(err, "invalid parameters")
	}
	return nil
}

func required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.Newf("%s is required", name)
	}
	return nil
}

func (s *Server) handleInfo(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p InfoParams
	if err := decodeParams(req, &p); err != nil {
		return createErrorResponse("info", err)
	}

	tool := strings.ToLower(strings.TrimSpace(p.Tool))
	switch tool {
	case "":
		stats := s.engine.Stats()
		return createJSONResponse(map[string]interface{}{
			"server":   "mpnkit",
			"version":  version.Version,
			"tools":    []string{"classify", "classify_batch", "compare", "can_replace", "extract", "suggest"},
			"rules":    stats.TotalRules,
			"types":    stats.TotalTypes,
			"handlers": stats.Handlers,
			"families": stats.Families,
		})
	case "version":
		return createJSONResponse(map[string]interface{}{
			"server_version": version.FullInfo(),
			"go_version":     runtime.Version(),
			"platform":       runtime.GOOS + "/" + runtime.GOARCH,
		})
	}

	help := getOperationHelp(tool)
	if help == "" {
		return createErrorResponse("info", errors.Newf("unknown tool: %s", p.Tool))
	}
	return createJSONResponse(map[string]interface{}{
		"tool":    tool,
		"example": help,
	})
}

func (s *Server) handleClassify(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.recoverFromPanic("classify", func() (*mcp.CallToolResult, error) {
		var p ClassifyParams
		if err := decodeParams(req, &p); err != nil {
			return nil, err
		}
		if p.MPN == nil {
			return nil, errors.New("mpn is required")
		}
		return createJSONResponse(s.engine.Classify(*p.MPN))
	})
}

func (s *Server) handleClassifyBatch(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.recoverFromPanic("classify_batch", func() (*mcp.CallToolResult, error) {
		var p BatchParams
		if err := decodeParams(req, &p); err != nil {
			return nil, err
		}
		if len(p.MPNs) == 0 {
			return nil, errors.New("mpns is required")
		}
		if len(p.MPNs) > maxBatch {
			return nil, errors.Newf("at most %d part numbers per call, got %d", maxBatch, len(p.MPNs))
		}
		results, err := s.engine.ClassifyBatch(ctx, p.MPNs)
		if err != nil {
			return nil, err
		}
		return createJSONResponse(map[string]interface{}{
			"count":   len(results),
			"results": results,
		})
	})
}

func (s *Server) handleCompare(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.recoverFromPanic("compare", func() (*mcp.CallToolResult, error) {
		var p CompareParams
		if err := decodeParams(req, &p); err != nil {
			return nil, err
		}
		if err := required("a", p.A); err != nil {
			return nil, err
		}
		if err := required("b", p.B); err != nil {
			return nil, err
		}
		return createJSONResponse(s.engine.Compare(p.A, p.B))
	})
}

func (s *Server) handleCanReplace(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.recoverFromPanic("can_replace", func() (*mcp.CallToolResult, error) {
		var p CanReplaceParams
		if err := decodeParams(req, &p); err != nil {
			return nil, err
		}
		if err := required("candidate", p.Candidate); err != nil {
			return nil, err
		}
		if err := required("original", p.Original); err != nil {
			return nil, err
		}
		return createJSONResponse(s.engine.Advise(p.Candidate, p.Original))
	})
}

func (s *Server) handleExtract(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.recoverFromPanic("extract", func() (*mcp.CallToolResult, error) {
		var p ExtractParams
		if err := decodeParams(req, &p); err != nil {
			return nil, err
		}
		if err := required("text", p.Text); err != nil {
			return nil, err
		}

		parts := make([]ExtractedPart, 0)
		for _, c := range s.engine.Extract(p.Text) {
			cl := s.engine.Classify(c.Text)
			parts = append(parts, ExtractedPart{
				Candidate: c,
				Types:     cl.Types,
				Primary:   cl.Primary,
				Handler:   cl.Handler,
			})
		}
		return createJSONResponse(map[string]interface{}{
			"count": len(parts),
			"parts": parts,
		})
	})
}

func (s *Server) handleSuggest(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.recoverFromPanic("suggest", func() (*mcp.CallToolResult, error) {
		var p SuggestParams
		if err := decodeParams(req, &p); err != nil {
			return nil, err
		}
		if err := required("mpn", p.MPN); err != nil {
			return nil, err
		}
		if p.Limit < 0 {
			return nil, errors.Newf("limit cannot be negative, got %d", p.Limit)
		}
		limit := p.Limit
		if limit == 0 {
			limit = s.engine.Config().Engine.SuggestLimit
		}
		return createJSONResponse(map[string]interface{}{
			"mpn":         p.MPN,
			"suggestions": s.engine.Suggest(p.MPN, limit),
		})
	})
}

// recoverFromPanic turns handler errors and panics into tool error results.
func (s *Server) recoverFromPanic(operation string, handler func() (*mcp.CallToolResult, error)) (result *mcp.CallToolResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in tool handler",
				zap.String("tool", operation),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
			result, err = createErrorResponse(operation, errors.Newf("internal error: %v", r))
		}
	}()

	result, err = handler()
	if err != nil {
		s.logger.Warn("tool failed", zap.String("tool", operation), zap.Error(err))
		return createErrorResponse(operation, err)
	}
	return result, nil
}

// Start serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting MCP server", zap.String("transport", "stdio"))
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
