// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package mcpserver

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
)

// getArgsMap extracts the arguments map from an MCP tool call request.
// Returns an empty map if arguments are nil or not a map.
func getArgsMap(request mcp.CallToolRequest) map[string]interface{} {
	if request.Params.Arguments != nil {
		if m, ok := request.Params.Arguments.(map[string]interface{}); ok {
			return m
		}
	}
	return map[string]interface{}{}
}

// getIntParam extracts an integer parameter. JSON numbers arrive as float64
// and must have no fractional part.
func getIntParam(args map[string]interface{}, key string) (int, error) {
	val, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing required parameter %q", key)
	}
	switch v := val.(type) {
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt32 || v < math.MinInt32 {
			return 0, fmt.Errorf("parameter %q must be an integer, got %v", key, v)
		}
		return int(v), nil
	case int:
		return v, nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("parameter %q must be an integer: %w", key, err)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("parameter %q must be a number, got %T", key, val)
	}
}

// marshalToolResult marshals any value to JSON and returns it as an MCP tool result.
func marshalToolResult(data interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("failed to marshal result: " + err.Error()), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
