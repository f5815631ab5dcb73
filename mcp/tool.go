package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// clientInfo identifies this module when it connects to a server.
var clientInfo = mcp.Implementation{Name: "onthisday-mcp-client", Version: DefaultServerVersion}

// MCPTool represents a tool provided by a remote MCP server.
// It implements the Tool interface.
type MCPTool struct {
	conn       ConnSpec
	remoteName string
	remoteDesc string
	argsSchema any
}

// NewMCPTool creates a new MCPTool instance.
func NewMCPTool(conn ConnSpec, remoteName, remoteDesc string, argsSchema any) *MCPTool {
	return &MCPTool{
		conn:       conn,
		remoteName: remoteName,
		remoteDesc: remoteDesc,
		argsSchema: argsSchema,
	}
}

// Name returns the name of the tool.
func (t *MCPTool) Name() string {
	return t.remoteName
}

// Description returns the tool's name, description and argument schema on one line.
func (t *MCPTool) Description() string {
	argsJSON, _ := json.Marshal(t.argsSchema)
	return fmt.Sprintf("name: %s, desc: %s, args_schema: %s", t.remoteName, t.remoteDesc, string(argsJSON))
}

// Call executes the tool with the given input.
// It creates a new MCP client connection, initializes it, and calls the tool.
// A result flagged as an error is returned as a Go error carrying its text.
func (t *MCPTool) Call(ctx context.Context, input any) (string, error) {
	transport, err := newTransportFromSpec(t.conn)
	if err != nil {
		return "", fmt.Errorf("failed to create transport: %w", err)
	}

	c := mcpclient.NewClient(transport)
	if err := c.Start(ctx); err != nil {
		return "", fmt.Errorf("failed to start MCP client: %w", err)
	}
	defer c.Close()

	return callTool(ctx, c, t.remoteName, input)
}

// callTool initializes c and invokes one tool on it.
func callTool(ctx context.Context, c *mcpclient.Client, name string, input any) (string, error) {
	if err := initialize(ctx, c); err != nil {
		return "", err
	}

	result, err := c.CallTool(ctx, mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: input,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call tool: %w", err)
	}

	return resultText(result)
}

func initialize(ctx context.Context, c *mcpclient.Client) error {
	initReq := mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			ClientInfo:      clientInfo,
		},
	}
	if _, err := c.Initialize(ctx, initReq); err != nil {
		return fmt.Errorf("failed to initialize MCP client: %w", err)
	}
	return nil
}

// resultText concatenates the text parts of a tool result.
func resultText(result *mcp.CallToolResult) (string, error) {
	if result == nil {
		return "", errors.New("empty tool result")
	}

	var parts []string
	for _, part := range result.Content {
		switch v := part.(type) {
		case mcp.TextContent:
			parts = append(parts, v.Text)
		case *mcp.TextContent:
			parts = append(parts, v.Text)
		}
	}
	text := strings.Join(parts, "\n")

	if result.IsError {
		if text == "" {
			text = "tool reported an error"
		}
		return "", errors.New(text)
	}
	return text, nil
}
