package mcp

// In-process tool calls for tests. CallTool invokes a handler directly, skipping the
// stdio transport, and returns the text payload.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CallTool simulates an MCP tool call. Error results come back as Go errors.
func (s *Server) CallTool(toolName string, params map[string]interface{}) (string, error) {
	ctx := context.Background()

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("failed to marshal params: %w", err)
	}
	req := &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{
			Name:      toolName,
			Arguments: paramsJSON,
		},
	}

	handler, ok := s.handler(toolName)
	if !ok {
		return "", fmt.Errorf("unknown tool: %s", toolName)
	}
	result, err := handler(ctx, req)
	if err != nil {
		return "", err
	}
	if result == nil || len(result.Content) == 0 {
		return "", nil
	}

	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		return "", nil
	}
	if result.IsError {
		var response map[string]interface{}
		if json.Unmarshal([]byte(text.Text), &response) == nil {
			if msg, ok := response["error"].(string); ok {
				return "", fmt.Errorf("MCP error: %s", msg)
			}
		}
		return "", fmt.Errorf("MCP error: %s", text.Text)
	}
	return text.Text, nil
}

func (s *Server) handler(toolName string) (func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error), bool) {
	switch toolName {
	case "info":
		return s.handleInfo, true
	case "classify":
		return s.handleClassify, true
	case "classify_batch":
		return s.handleClassifyBatch, true
	case "compare":
		return s.handleCompare, true
	case "can_replace":
		return s.handleCanReplace, true
	case "extract":
		return s.handleExtract, true
	case "suggest":
		return s.handleSuggest, true
	}
	return nil, false
}
