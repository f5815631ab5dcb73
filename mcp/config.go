package mcp

import "fmt"

// TransportType represents the type of transport used by an MCP connection.
type TransportType string

const (
	// TransportSSE represents Server-Sent Events transport.
	TransportSSE TransportType = "sse"
	// TransportStreamableHTTP represents streamable HTTP transport.
	TransportStreamableHTTP TransportType = "streamable_http"
	// TransportStdio represents stdio transport.
	TransportStdio TransportType = "stdio"
)

const (
	// DefaultServerName is the implementation name announced to clients.
	DefaultServerName = "mcp-OnThisDay"
	// DefaultServerVersion is the implementation version announced to clients.
	DefaultServerVersion = "1.0.0"
	// DefaultAddr is the listen address for the HTTP based transports.
	DefaultAddr = ":8080"
)

// ServerConfig holds configuration for serving the on-this-day tool.
type ServerConfig struct {
	// Name is the implementation name reported during initialize.
	Name string

	// Version is the implementation version reported during initialize.
	Version string

	// Transport specifies the transport type: "stdio", "sse", or "streamable_http".
	Transport string

	// Addr is the listen address (used by sse and streamable_http).
	Addr string
}

// withDefaults returns a copy of c with empty fields filled in.
func (c ServerConfig) withDefaults() ServerConfig {
	if c.Name == "" {
		c.Name = DefaultServerName
	}
	if c.Version == "" {
		c.Version = DefaultServerVersion
	}
	if c.Transport == "" {
		c.Transport = string(TransportStdio)
	}
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	return c
}

// Validate checks if the server configuration is valid. Empty fields are
// accepted and replaced by defaults when the server is built.
func (c *ServerConfig) Validate() error {
	switch TransportType(c.Transport) {
	case "", TransportStdio, TransportSSE, TransportStreamableHTTP:
		return nil
	default:
		return fmt.Errorf("unsupported transport type: %s", c.Transport)
	}
}

// Config holds configuration for connecting to a remote MCP server.
type Config struct {
	// Name is a unique identifier for this MCP server configuration.
	Name string

	// URL is the endpoint URL (required for SSE and streamable_http transports).
	URL string

	// Transport specifies the transport type: "sse", "streamable_http", or "stdio".
	Transport string

	// Disabled indicates whether this MCP server should be skipped during initialization.
	Disabled bool

	// Command is the command to run (required for stdio transport).
	Command string

	// Args are the command arguments (used for stdio transport).
	Args []string

	// Env is extra environment for the stdio child process, as KEY=value pairs.
	Env []string
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config name is required")
	}

	if c.Transport == "" {
		return fmt.Errorf("transport type is required")
	}

	switch TransportType(c.Transport) {
	case TransportSSE, TransportStreamableHTTP:
		if c.URL == "" {
			return fmt.Errorf("URL is required for %s transport", c.Transport)
		}
	case TransportStdio:
		if c.Command == "" {
			return fmt.Errorf("command is required for stdio transport")
		}
	default:
		return fmt.Errorf("unsupported transport type: %s", c.Transport)
	}

	return nil
}

func (c *Config) connSpec() ConnSpec {
	return ConnSpec{
		Name:      c.Name,
		Transport: c.Transport,
		Endpoint:  c.URL,
		Command:   c.Command,
		Args:      c.Args,
		Env:       c.Env,
	}
}
