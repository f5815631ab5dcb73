package mcp

import (
	"context"
	"fmt"

	mcpclient "github.com/mark3labs/mcp-go/client"
)

// CallInProcess runs the tool through an in-process MCP client, so the full
// protocol path (initialize, argument validation, result encoding) is used
// without a transport.
func (s *Server) CallInProcess(ctx context.Context, args Arguments) (string, error) {
	c, err := mcpclient.NewInProcessClient(s.mcp)
	if err != nil {
		return "", fmt.Errorf("failed to create in-process client: %w", err)
	}
	if err := c.Start(ctx); err != nil {
		return "", fmt.Errorf("failed to start MCP client: %w", err)
	}
	defer c.Close()

	return callTool(ctx, c, ToolName, args)
}
