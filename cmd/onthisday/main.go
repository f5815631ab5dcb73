package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MrLeeang/onthisday-mcp/config"
	"github.com/MrLeeang/onthisday-mcp/mcp"
	"github.com/MrLeeang/onthisday-mcp/onthisday"
)

// version is injectable via -ldflags "-X main.version=...".
var version = mcp.DefaultServerVersion

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "onthisday",
		Short:         "Wikipedia \"On This Day\" MCP tool server",
		Long:          "onthisday serves the wikipedia-onthisday tool over the Model Context Protocol.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("config", "c", "", "path to a YAML config file")
	root.PersistentFlags().String("env-file", ".env", "optional .env file with ONTHISDAY_* variables")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tool over stdio, sse or streamable_http",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().String("transport", "", "transport: stdio, sse or streamable_http")
	serveCmd.Flags().String("addr", "", "listen address for sse and streamable_http")
	addFeedFlags(serveCmd)

	callCmd := &cobra.Command{
		Use:   "call",
		Short: "Invoke the tool once and print the report",
		Long: "call runs the tool through an in-process MCP client, or against a remote " +
			"server when --server-url or --server-command is given.",
		Args: cobra.NoArgs,
		RunE: runCall,
	}
	callCmd.Flags().String("country", "", "language code, e.g. en, de, it, fr")
	callCmd.Flags().Bool("random", false, "print one random event")
	callCmd.Flags().String("date", "", "day as MM-DD (default today)")
	callCmd.Flags().String("server-url", "", "URL of a remote MCP server")
	callCmd.Flags().String("server-transport", string(mcp.TransportStreamableHTTP), "transport of the remote server: sse, streamable_http or stdio")
	callCmd.Flags().String("server-command", "", "command that starts a stdio MCP server")
	callCmd.Flags().StringSlice("server-arg", nil, "argument for --server-command (repeatable)")
	addFeedFlags(callCmd)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "onthisday %s\n", version)
			return nil
		},
	}

	root.AddCommand(serveCmd, callCmd, versionCmd)
	return root
}

func addFeedFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "", "feed format: json or atom")
	cmd.Flags().String("language", "", "default language code")
}

// loadConfig reads the config file and environment, then applies flags that were set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")

	cfg, err := config.Load(path, envFile)
	if err != nil {
		return nil, err
	}

	overrides := map[string]*string{
		"transport": &cfg.Server.Transport,
		"addr":      &cfg.Server.Addr,
		"format":    &cfg.Feed.Format,
		"language":  &cfg.Feed.Language,
	}
	for name, dst := range overrides {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			*dst = f.Value.String()
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildServer(cfg *config.Config, logOut io.Writer) (*mcp.Server, error) {
	logger := config.NewLogger(cfg.Log, logOut)
	opts := append(cfg.ServiceOptions(), onthisday.WithLogger(logger))
	svc := onthisday.New(opts...)
	return mcp.NewServer(cfg.MCPServerConfig(), svc, logger)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// stdout belongs to the stdio transport; logs go to stderr.
	srv, err := buildServer(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	return srv.Serve(cmd.Context())
}

func runCall(cmd *cobra.Command, args []string) error {
	country, _ := cmd.Flags().GetString("country")
	random, _ := cmd.Flags().GetBool("random")
	date, _ := cmd.Flags().GetString("date")
	serverURL, _ := cmd.Flags().GetString("server-url")
	serverCommand, _ := cmd.Flags().GetString("server-command")

	toolArgs := mcp.Arguments{Country: country, Random: random, Date: date}

	var (
		report string
		err    error
	)
	if serverURL != "" || serverCommand != "" {
		report, err = callRemote(cmd, toolArgs)
	} else {
		report, err = callLocal(cmd, toolArgs)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), report)
	return nil
}

func callLocal(cmd *cobra.Command, args mcp.Arguments) (string, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return "", err
	}
	srv, err := buildServer(cfg, cmd.ErrOrStderr())
	if err != nil {
		return "", err
	}
	return srv.CallInProcess(cmd.Context(), args)
}

func callRemote(cmd *cobra.Command, args mcp.Arguments) (string, error) {
	serverURL, _ := cmd.Flags().GetString("server-url")
	transport, _ := cmd.Flags().GetString("server-transport")
	command, _ := cmd.Flags().GetString("server-command")
	commandArgs, _ := cmd.Flags().GetStringSlice("server-arg")
	if command != "" {
		transport = string(mcp.TransportStdio)
	}

	tools, err := mcp.InitializeMCP(cmd.Context(), []*mcp.Config{{
		Name:      "remote",
		Transport: transport,
		URL:       serverURL,
		Command:   command,
		Args:      commandArgs,
	}})
	if err != nil {
		return "", err
	}

	tool := mcp.FindTool(tools, mcp.ToolName)
	if tool == nil {
		return "", errors.New("remote server does not offer " + mcp.ToolName)
	}
	return tool.Call(cmd.Context(), args)
}
