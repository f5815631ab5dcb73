package onthisday

import (
	"log/slog"
	"net/http"
	"time"
)

// Option is a function type for configuring a Service.
type Option func(*Service)

// WithHTTPClient sets the client used for the feed request.
// Default is http.DefaultClient.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		s.httpClient = client
	}
}

// WithFormat selects the feed endpoint and payload shape.
// Default is FormatJSON.
func WithFormat(f Format) Option {
	return func(s *Service) {
		s.format = f
	}
}

// WithEndpoint overrides the endpoint template for the selected format.
// See BuildURL for the supported placeholders.
func WithEndpoint(template string) Option {
	return func(s *Service) {
		s.endpoint = template
	}
}

// WithDefaultLanguage sets the language used when a request carries none.
// Default is "en".
func WithDefaultLanguage(lang string) Option {
	return func(s *Service) {
		s.defaultLanguage = lang
	}
}

// WithClock sets the source of "today". Default is time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithPicker sets the index picker used in random mode. The Service may be
// called from several goroutines, so p must be safe for concurrent use; the
// package-level rand.IntN is, a *rand.Rand is not.
//
// Example:
//
//	svc := onthisday.New(onthisday.WithPicker(rand.IntN))
func WithPicker(p Picker) Option {
	return func(s *Service) {
		s.formatter.Pick = p
	}
}

// WithMaxTokens bounds the report to n tokens. Zero disables the budget.
// Unless WithTokenCounter is also given, New builds a TiktokenCounter, which may
// download the BPE ranks; if that fails the budget is disabled with a warning.
func WithMaxTokens(n int) Option {
	return func(s *Service) {
		s.formatter.MaxTokens = n
	}
}

// WithTokenCounter sets the counter used for the token budget.
func WithTokenCounter(c TokenCounter) Option {
	return func(s *Service) {
		s.formatter.Counter = c
	}
}

// WithUserAgent sets the User-Agent header of the feed request.
func WithUserAgent(ua string) Option {
	return func(s *Service) {
		s.userAgent = ua
	}
}

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}
