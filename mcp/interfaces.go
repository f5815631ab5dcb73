package mcp

import "context"

// Tool is a remote tool discovered on an MCP server.
type Tool interface {
	// Name returns the name of the tool.
	Name() string

	// Description returns a description of what the tool does and its argument schema.
	Description() string

	// Call executes the tool with the given arguments and returns its text output.
	// The input is typically a map[string]any matching the tool's input schema.
	Call(ctx context.Context, input any) (string, error)
}
