package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/server"

	"github.com/MrLeeang/onthisday-mcp/config"
)

func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append(args, "--env-file", ""))
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func feedServer(t *testing.T) (*httptest.Server, *string) {
	t.Helper()
	var lastPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastPath = r.URL.Path
		_, _ = io.WriteString(w, `{"events": [{"year": 1066, "text": "Battle of <b>Hastings</b>."}]}`)
	}))
	t.Cleanup(srv.Close)
	return srv, &lastPath
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runCommand(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out) != "onthisday "+version {
		t.Errorf("output = %q", out)
	}
}

func TestCallCommandInProcess(t *testing.T) {
	srv, lastPath := feedServer(t)
	t.Setenv("ONTHISDAY_FEED_ENDPOINT", srv.URL+"/{lang}/{month}/{day}")
	t.Setenv("ONTHISDAY_LOG_LEVEL", "error")

	out, _, err := runCommand(t, "call", "--country", "de", "--date", "10-14")
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if *lastPath != "/de/10/14" {
		t.Errorf("feed path = %q", *lastPath)
	}
	if !strings.Contains(out, `Wikipedia "On This Day" Events (DE)`) || !strings.Contains(out, "📅 1066\nBattle of Hastings.") {
		t.Errorf("output = %q", out)
	}
}

func TestCallCommandInvalidDate(t *testing.T) {
	srv, _ := feedServer(t)
	t.Setenv("ONTHISDAY_FEED_ENDPOINT", srv.URL+"/{lang}/{month}/{day}")
	t.Setenv("ONTHISDAY_LOG_LEVEL", "error")

	_, _, err := runCommand(t, "call", "--date", "02-30")
	if err == nil || !strings.Contains(err.Error(), `Error fetching Wikipedia "On This Day"`) {
		t.Errorf("err = %v", err)
	}
}

func TestCallCommandRemote(t *testing.T) {
	feed, _ := feedServer(t)
	t.Setenv("ONTHISDAY_FEED_ENDPOINT", feed.URL+"/{lang}/{month}/{day}")
	t.Setenv("ONTHISDAY_LOG_LEVEL", "error")

	cfg, err := config.Load("", "")
	if err != nil {
		t.Fatal(err)
	}
	srv, err := buildServer(cfg, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	remote := httptest.NewServer(server.NewStreamableHTTPServer(srv.MCPServer()))
	defer remote.Close()

	out, _, err := runCommand(t, "call", "--server-url", remote.URL+"/mcp", "--random")
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if strings.Count(out, "📅") != 1 {
		t.Errorf("output = %q", out)
	}
}

func TestServeCommandRejectsBadTransport(t *testing.T) {
	_, _, err := runCommand(t, "serve", "--transport", "carrier-pigeon")
	if err == nil || !strings.Contains(err.Error(), "unsupported transport") {
		t.Errorf("err = %v", err)
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	root := newRootCommand()
	serve, _, err := root.Find([]string{"serve"})
	if err != nil {
		t.Fatal(err)
	}
	if err := serve.ParseFlags([]string{"--env-file", "", "--transport", "sse", "--addr", "127.0.0.1:7000", "--format", "atom", "--language", "it"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(serve)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Server.Transport != "sse" || cfg.Server.Addr != "127.0.0.1:7000" || cfg.Feed.Format != "atom" || cfg.Feed.Language != "it" {
		t.Errorf("cfg = %+v", cfg)
	}
}
