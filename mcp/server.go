package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/MrLeeang/onthisday-mcp/onthisday"
)

const (
	// ToolName is the registered name of the on-this-day tool.
	ToolName = "wikipedia-onthisday"

	// ToolTitle is the human-readable tool title.
	ToolTitle = "Wikipedia On This Day"

	// ToolDescription is shown to clients when listing tools.
	ToolDescription = "Get historical events that happened on this day from Wikipedia's 'On This Day' feed."

	// ErrorPrefix starts the text of every failed tool result.
	ErrorPrefix = `Error fetching Wikipedia "On This Day"`
)

// shutdownTimeout bounds graceful shutdown of the HTTP transports.
const shutdownTimeout = 5 * time.Second

// Lookuper answers one on-this-day request. *onthisday.Service implements it.
type Lookuper interface {
	Lookup(ctx context.Context, req onthisday.Request) (string, error)
}

// Server exposes a Lookuper as the wikipedia-onthisday MCP tool.
type Server struct {
	cfg       ServerConfig
	svc       Lookuper
	mcp       *server.MCPServer
	validator *argumentsValidator
	logger    *slog.Logger

	stdin  io.Reader
	stdout io.Writer
}

// NewServer builds the MCP server and registers the tool.
//
// Example:
//
//	svc := onthisday.New()
//	srv, err := mcp.NewServer(mcp.ServerConfig{Transport: "stdio"}, svc, slog.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Serve(ctx); err != nil {
//	    log.Fatal(err)
//	}
func NewServer(cfg ServerConfig, svc Lookuper, logger *slog.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, errors.New("lookup service is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.withDefaults()

	schemaJSON, err := argumentsSchema()
	if err != nil {
		return nil, err
	}
	validator, err := newArgumentsValidator(schemaJSON)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:       cfg,
		svc:       svc,
		validator: validator,
		logger:    logger,
		stdin:     os.Stdin,
		stdout:    os.Stdout,
	}

	s.mcp = server.NewMCPServer(cfg.Name, cfg.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	tool := mcp.NewToolWithRawSchema(ToolName, ToolDescription, schemaJSON)
	tool.Annotations.Title = ToolTitle
	s.mcp.AddTool(tool, s.HandleOnThisDay)

	return s, nil
}

// MCPServer returns the underlying mcp-go server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// Config returns the effective configuration, defaults applied.
func (s *Server) Config() ServerConfig {
	return s.cfg
}

// HandleOnThisDay is the tools/call handler of the wikipedia-onthisday tool.
// Failures are returned as error results so the caller sees the message.
func (s *Server) HandleOnThisDay(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()

	args, err := s.validator.Decode(req.Params.Arguments)
	if err != nil {
		s.logger.Warn("tool call rejected", "tool", ToolName, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", ErrorPrefix, err)), nil
	}

	report, err := s.svc.Lookup(ctx, onthisday.Request{
		Language: args.Country,
		Random:   args.Random,
		Date:     args.Date,
	})
	if err != nil {
		s.logger.Error("tool call failed", "tool", ToolName, "country", args.Country, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", ErrorPrefix, err)), nil
	}

	s.logger.Info("tool call served", "tool", ToolName, "country", args.Country,
		"random", args.Random, "date", args.Date, "elapsed", time.Since(start))
	return mcp.NewToolResultText(report), nil
}

// Serve runs the configured transport until ctx is done or the transport fails.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("starting MCP server", "name", s.cfg.Name, "version", s.cfg.Version,
		"transport", s.cfg.Transport, "addr", s.cfg.Addr)

	switch TransportType(s.cfg.Transport) {
	case TransportStdio:
		stdio := server.NewStdioServer(s.mcp)
		stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))
		err := stdio.Listen(ctx, s.stdin, s.stdout)
		if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
			return nil
		}
		return err
	case TransportSSE:
		sse := server.NewSSEServer(s.mcp)
		return s.serveHTTP(ctx, sse.Start, sse.Shutdown)
	case TransportStreamableHTTP:
		h := server.NewStreamableHTTPServer(s.mcp)
		return s.serveHTTP(ctx, h.Start, h.Shutdown)
	default:
		return fmt.Errorf("unsupported transport type: %s", s.cfg.Transport)
	}
}

func (s *Server) serveHTTP(ctx context.Context, start func(addr string) error, shutdown func(context.Context) error) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- start(s.cfg.Addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down MCP server", "transport", s.cfg.Transport)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down %s server: %w", s.cfg.Transport, err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
