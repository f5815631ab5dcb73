package mcp

import "testing"

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"sse", Config{Name: "a", Transport: "sse", URL: "http://x/sse"}, false},
		{"streamable", Config{Name: "a", Transport: "streamable_http", URL: "http://x/mcp"}, false},
		{"stdio", Config{Name: "a", Transport: "stdio", Command: "onthisday", Args: []string{"serve"}}, false},
		{"missing name", Config{Transport: "sse", URL: "http://x"}, true},
		{"missing transport", Config{Name: "a"}, true},
		{"sse without url", Config{Name: "a", Transport: "sse"}, true},
		{"stdio without command", Config{Name: "a", Transport: "stdio"}, true},
		{"unknown transport", Config{Name: "a", Transport: "grpc"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestServerConfigValidate(t *testing.T) {
	for _, transport := range []string{"", "stdio", "sse", "streamable_http"} {
		c := ServerConfig{Transport: transport}
		if err := c.Validate(); err != nil {
			t.Errorf("transport %q: %v", transport, err)
		}
	}
	c := ServerConfig{Transport: "websocket"}
	if err := c.Validate(); err == nil {
		t.Error("want error for websocket transport")
	}
}

func TestNewTransportFromSpec(t *testing.T) {
	if _, err := newTransportFromSpec(ConnSpec{Transport: "stdio"}); err == nil {
		t.Error("stdio without command should fail")
	}
	if _, err := newTransportFromSpec(ConnSpec{Transport: "sse"}); err == nil {
		t.Error("sse without endpoint should fail")
	}
	if _, err := newTransportFromSpec(ConnSpec{Transport: "ftp", Endpoint: "x"}); err == nil {
		t.Error("unknown transport should fail")
	}
	if tr, err := newTransportFromSpec(ConnSpec{Transport: "streamable_http", Endpoint: "http://127.0.0.1:1/mcp"}); err != nil || tr == nil {
		t.Errorf("streamable_http: %v", err)
	}
}
