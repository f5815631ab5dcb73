package mcp

import (
	"context"
	"fmt"

	client "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// InitializeMCP connects to the MCP servers described by configs and returns
// the tools they offer.
//
// It validates each configuration, establishes a temporary connection to
// enumerate tools, then closes it. Each returned tool keeps its connection
// specification and opens a fresh connection when called. Disabled
// configurations are skipped; the first failing server aborts the call.
//
// Example:
//
//	configs := []*mcp.Config{
//	    {
//	        Name:      "onthisday",
//	        Transport: "streamable_http",
//	        URL:       "http://localhost:8080/mcp",
//	    },
//	}
//	tools, err := mcp.InitializeMCP(ctx, configs)
//	if err != nil {
//	    log.Fatal(err)
//	}
func InitializeMCP(ctx context.Context, configs []*Config) ([]Tool, error) {
	var tools []Tool

	for _, cfg := range configs {
		if cfg.Disabled {
			continue
		}

		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config for %s: %w", cfg.Name, err)
		}

		found, err := listTools(ctx, cfg.connSpec())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.Name, err)
		}
		tools = append(tools, found...)
	}

	return tools, nil
}

func listTools(ctx context.Context, spec ConnSpec) ([]Tool, error) {
	transport, err := newTransportFromSpec(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to create transport: %w", err)
	}

	c := client.NewClient(transport)
	if err := c.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start MCP client: %w", err)
	}
	defer c.Close()

	if err := initialize(ctx, c); err != nil {
		return nil, err
	}

	toolsList, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	var tools []Tool
	for _, rt := range toolsList.Tools {
		if rt.Name == "" {
			continue
		}
		var schema any = rt.InputSchema
		if len(rt.RawInputSchema) > 0 {
			schema = rt.RawInputSchema
		}
		tools = append(tools, NewMCPTool(spec, rt.Name, rt.Description, schema))
	}
	return tools, nil
}

// FindTool returns the tool called name, or nil.
func FindTool(tools []Tool, name string) Tool {
	for _, t := range tools {
		if t.Name() == name {
			return t
		}
	}
	return nil
}
