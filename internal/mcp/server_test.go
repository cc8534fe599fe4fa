package mcp

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/mpnkit/internal/advisor"
	"github.com/standardbeagle/mpnkit/internal/engine"
	"github.com/standardbeagle/mpnkit/internal/logging"
	"github.com/standardbeagle/mpnkit/internal/types"
)

// classifyResult decodes the parts of a classification the tests check. Attribute
// quantities and enums are encode-only.
type classifyResult struct {
	MPN        string                `json:"mpn"`
	Types      []types.ComponentType `json:"types"`
	Primary    types.ComponentType   `json:"primary"`
	Attributes struct {
		Series  string `json:"series"`
		Package string `json:"package"`
	} `json:"attributes"`
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := NewServer(nil, nil)
	require.NoError(t, err)
	require.NotNil(t, s.server)
	return s
}

func TestNewServer(t *testing.T) {
	s := newTestServer(t)
	assert.Same(t, engine.Default(), s.engine)
	assert.NotNil(t, s.logger)
}

func TestClassifyTool(t *testing.T) {
	s := newTestServer(t)

	out, err := s.CallTool("classify", map[string]interface{}{"mpn": "AOD4184A"})
	require.NoError(t, err)

	var c classifyResult
	require.NoError(t, json.Unmarshal([]byte(out), &c))
	assert.Equal(t, "AOD4184", c.Attributes.Series)
	assert.Equal(t, "TO-252", c.Attributes.Package)
	assert.Contains(t, c.Types, types.MOSFET)

	out, err = s.CallTool("classify", map[string]interface{}{"mpn": ""})
	require.NoError(t, err)
	c = classifyResult{}
	require.NoError(t, json.Unmarshal([]byte(out), &c))
	assert.Empty(t, c.Types)

	_, err = s.CallTool("classify", map[string]interface{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mpn is required")
}

func TestCompareTool(t *testing.T) {
	s := newTestServer(t)

	out, err := s.CallTool("compare", map[string]interface{}{"a": "LM358N", "b": "MC1458"})
	require.NoError(t, err)

	var cmp struct {
		Score      float64 `json:"score"`
		Calculator string  `json:"calculator"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &cmp))
	assert.GreaterOrEqual(t, cmp.Score, 0.9)
	assert.Equal(t, "opamp", cmp.Calculator)

	out, err = s.CallTool("compare", map[string]interface{}{"a": "IRF530", "b": "2N2222"})
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &cmp))
	assert.Equal(t, 0.0, cmp.Score)

	_, err = s.CallTool("compare", map[string]interface{}{"a": "LM358N"})
	assert.Error(t, err)
}

func TestCanReplaceTool(t *testing.T) {
	s := newTestServer(t)

	var v advisor.Verdict
	out, err := s.CallTool("can_replace", map[string]interface{}{"candidate": "UHS1E101MPD", "original": "UHW1E101MPD"})
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.True(t, v.Replaceable)

	out, err = s.CallTool("can_replace", map[string]interface{}{"candidate": "UHW1E101MPD", "original": "UHS1E101MPD"})
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.False(t, v.Replaceable)
	assert.NotEmpty(t, v.Violations)
}

func TestExtractTool(t *testing.T) {
	s := newTestServer(t)

	out, err := s.CallTool("extract", map[string]interface{}{"text": "Swap the LM358N op-amp for an MC1458."})
	require.NoError(t, err)

	var resp struct {
		Count int             `json:"count"`
		Parts []ExtractedPart `json:"parts"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "LM358N", resp.Parts[0].MPN)
	assert.Equal(t, types.OpAmp, resp.Parts[0].Hint)
	assert.Equal(t, "TI", resp.Parts[0].Handler)
	assert.Equal(t, "MC1458", resp.Parts[1].MPN)
}

func TestSuggestTool(t *testing.T) {
	s := newTestServer(t)

	out, err := s.CallTool("suggest", map[string]interface{}{"mpn": "LN358", "limit": 3})
	require.NoError(t, err)
	assert.Contains(t, out, `"LM358"`)

	_, err = s.CallTool("suggest", map[string]interface{}{"mpn": "LN358", "limit": -1})
	assert.Error(t, err)
}

func TestClassifyBatchTool(t *testing.T) {
	s := newTestServer(t)

	out, err := s.CallTool("classify_batch", map[string]interface{}{"mpns": []string{"LM358N", "XJ9999", "1N4007"}})
	require.NoError(t, err)

	var resp struct {
		Count   int              `json:"count"`
		Results []classifyResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, 3, resp.Count)
	assert.NotEmpty(t, resp.Results[0].Types)
	assert.Empty(t, resp.Results[1].Types)
	assert.Equal(t, types.Diode, resp.Results[2].Primary)

	_, err = s.CallTool("classify_batch", map[string]interface{}{"mpns": []string{}})
	assert.Error(t, err)
}

func TestInfoTool(t *testing.T) {
	s := newTestServer(t)

	out, err := s.CallTool("info", map[string]interface{}{})
	require.NoError(t, err)
	assert.Contains(t, out, `"can_replace"`)

	out, err = s.CallTool("info", map[string]interface{}{"tool": "version"})
	require.NoError(t, err)
	assert.Contains(t, out, "server_version")

	out, err = s.CallTool("info", map[string]interface{}{"tool": "compare"})
	require.NoError(t, err)
	assert.Contains(t, out, "LM358N")

	_, err = s.CallTool("info", map[string]interface{}{"tool": "search"})
	assert.Error(t, err)

	_, err = s.CallTool("search", nil)
	assert.Error(t, err)
}

func TestErrorResponsesAreFlagged(t *testing.T) {
	s := newTestServer(t)

	req := &mcp.CallToolRequest{Params: &mcp.CallToolParamsRaw{Name: "compare", Arguments: json.RawMessage(`[1,2]`)}}
	result, err := s.handleCompare(t.Context(), req)
	require.NoError(t, err)
	assert.True(t, result.IsError)

	text := result.Content[0].(*mcp.TextContent).Text
	assert.Contains(t, text, "invalid parameters")
	assert.Contains(t, text, "suggestions")
}

func TestRecoverFromPanic(t *testing.T) {
	s := newTestServer(t)

	result, err := s.recoverFromPanic("classify", func() (*mcp.CallToolResult, error) {
		panic("boom")
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].(*mcp.TextContent).Text, "internal error: boom")
}

func TestNewDiagnosticLoggerAvoidsStdio(t *testing.T) {
	logger, path, err := NewDiagnosticLogger(logging.Config{Level: "info", Format: "json", OutputPath: "stdout"})
	require.NoError(t, err)
	defer logger.Sync()
	assert.True(t, strings.HasSuffix(path, ".log"))

	explicit := filepath.Join(t.TempDir(), "mcp.log")
	_, path, err = NewDiagnosticLogger(logging.Config{Level: "info", OutputPath: explicit})
	require.NoError(t, err)
	assert.Equal(t, explicit, path)
}
