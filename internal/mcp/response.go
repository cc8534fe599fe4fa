package mcp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// createJSONResponse creates a standardized JSON response for MCP tools
func createJSONResponse(data interface{}) (*mcp.CallToolResult, error) {
	content, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response data: %v", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(content)},
		},
	}, nil
}

// createErrorResponse reports a tool failure inside the result with IsError set, so
// the client model sees the error and can correct its call.
func createErrorResponse(operation string, err error) (*mcp.CallToolResult, error) {
	return createSmartErrorResponse(operation, err, nil)
}

// createSmartErrorResponse adds suggestions and the tool's usage to an error response.
func createSmartErrorResponse(operation string, err error, context map[string]interface{}) (*mcp.CallToolResult, error) {
	errorData := map[string]interface{}{
		"success":   false,
		"error":     err.Error(),
		"operation": operation,
	}
	if suggestions := generateErrorSuggestions(operation, err); len(suggestions) > 0 {
		errorData["suggestions"] = suggestions
	}
	if help := getOperationHelp(operation); help != "" {
		errorData["help"] = help
	}
	if len(context) > 0 {
		errorData["context"] = context
	}

	response, marshalErr := createJSONResponse(errorData)
	if marshalErr != nil {
		return nil, marshalErr
	}
	response.IsError = true
	return response, nil
}

func generateErrorSuggestions(operation string, err error) []string {
	msg := err.Error()
	var suggestions []string

	switch {
	case strings.Contains(msg, "invalid parameters"):
		suggestions = append(suggestions, "Arguments must be a JSON object; see 'info "+operation+"'")
	case strings.HasSuffix(msg, "is required"):
		suggestions = append(suggestions, "Pass the part number exactly as printed, e.g. {\"mpn\": \"LM358N\"}")
	}

	switch operation {
	case "compare", "can_replace":
		suggestions = append(suggestions, "Use 'classify' first to check that both parts are recognized")
	case "extract":
		suggestions = append(suggestions, "Paste the free text as-is; values like 100nF and 3.3V are skipped")
	}
	return suggestions
}

func getOperationHelp(operation string) string {
	switch operation {
	case "classify":
		return `{"mpn": "AOD4184A"}`
	case "compare":
		return `{"a": "LM358N", "b": "MC1458"}`
	case "can_replace":
		return `{"candidate": "UHS1E101MPD", "original": "UHW1E101MPD"}`
	case "extract":
		return `{"text": "swap the LM358N for an MC1458"}`
	case "suggest":
		return `{"mpn": "LN358", "limit": 5}`
	}
	return ""
}
