// Package config loads the on-this-day server configuration from a YAML file,
// an optional .env file and ONTHISDAY_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/MrLeeang/onthisday-mcp/mcp"
	"github.com/MrLeeang/onthisday-mcp/onthisday"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ONTHISDAY_"

// Config is the full server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Feed   FeedConfig   `yaml:"feed"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig describes how the tool is exposed.
type ServerConfig struct {
	Name      string `yaml:"name"`
	Version   string `yaml:"version"`
	Transport string `yaml:"transport"`
	Addr      string `yaml:"addr"`
}

// FeedConfig describes how the feed is queried.
type FeedConfig struct {
	Format    string        `yaml:"format"`
	Language  string        `yaml:"language"`
	Endpoint  string        `yaml:"endpoint"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
	MaxTokens int           `yaml:"max_tokens"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Name:      mcp.DefaultServerName,
			Version:   mcp.DefaultServerVersion,
			Transport: string(mcp.TransportStdio),
			Addr:      mcp.DefaultAddr,
		},
		Feed: FeedConfig{
			Format:    string(onthisday.FormatJSON),
			Language:  onthisday.DefaultLanguage,
			UserAgent: onthisday.DefaultUserAgent,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load builds the configuration. path may be empty, in which case only defaults
// and the environment apply. envFile is loaded with godotenv when it exists;
// variables already set in the process environment win over it.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config load: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config parse: %w", err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config env file: %w", err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"SERVER_NAME":    &c.Server.Name,
		"SERVER_VERSION": &c.Server.Version,
		"TRANSPORT":      &c.Server.Transport,
		"ADDR":           &c.Server.Addr,
		"FEED_FORMAT":    &c.Feed.Format,
		"LANGUAGE":       &c.Feed.Language,
		"FEED_ENDPOINT":  &c.Feed.Endpoint,
		"USER_AGENT":     &c.Feed.UserAgent,
		"LOG_LEVEL":      &c.Log.Level,
		"LOG_FORMAT":     &c.Log.Format,
	}
	for key, dst := range strs {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}

	if v, ok := lookup(EnvPrefix + "MAX_TOKENS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config env %sMAX_TOKENS: %w", EnvPrefix, err)
		}
		c.Feed.MaxTokens = n
	}
	if v, ok := lookup(EnvPrefix + "TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config env %sTIMEOUT: %w", EnvPrefix, err)
		}
		c.Feed.Timeout = d
	}
	return nil
}

// Validate rejects values no component can act on.
func (c *Config) Validate() error {
	sc := c.MCPServerConfig()
	if err := sc.Validate(); err != nil {
		return fmt.Errorf("config server: %w", err)
	}
	if _, err := onthisday.ParseFormat(c.Feed.Format); err != nil {
		return fmt.Errorf("config feed: %w", err)
	}
	if c.Feed.MaxTokens < 0 {
		return fmt.Errorf("config feed: max_tokens must not be negative")
	}
	if c.Feed.Timeout < 0 {
		return fmt.Errorf("config feed: timeout must not be negative")
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config log: %w", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("config log: unsupported format: %s", c.Log.Format)
	}
	return nil
}

// MCPServerConfig converts the server section for mcp.NewServer.
func (c *Config) MCPServerConfig() mcp.ServerConfig {
	return mcp.ServerConfig{
		Name:      c.Server.Name,
		Version:   c.Server.Version,
		Transport: c.Server.Transport,
		Addr:      c.Server.Addr,
	}
}

// ServiceOptions converts the feed section into onthisday options.
// Validate must have succeeded.
func (c *Config) ServiceOptions() []onthisday.Option {
	format, _ := onthisday.ParseFormat(c.Feed.Format)
	opts := []onthisday.Option{
		onthisday.WithFormat(format),
		onthisday.WithDefaultLanguage(c.Feed.Language),
		onthisday.WithUserAgent(c.Feed.UserAgent),
		onthisday.WithMaxTokens(c.Feed.MaxTokens),
	}
	if c.Feed.Endpoint != "" {
		opts = append(opts, onthisday.WithEndpoint(c.Feed.Endpoint))
	}
	if c.Feed.Timeout > 0 {
		opts = append(opts, onthisday.WithHTTPClient(&http.Client{Timeout: c.Feed.Timeout}))
	}
	return opts
}
