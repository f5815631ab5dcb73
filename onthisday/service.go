package onthisday

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Request describes one lookup.
type Request struct {
	// Language is the Wikipedia language code, e.g. "en", "de", "it". Empty means the default.
	Language string
	// Random requests a single entry chosen at random instead of the full list.
	Random bool
	// Date is an optional "MM-DD" day. Empty means today. Ignored by FormatAtom.
	Date string
}

// Service answers "on this day" lookups. It holds no per-request state and is
// safe for concurrent use once constructed.
type Service struct {
	httpClient      *http.Client
	format          Format
	endpoint        string
	defaultLanguage string
	userAgent       string
	now             func() time.Time
	logger          *slog.Logger

	fetcher   *Fetcher
	extractor Extractor
	formatter Formatter
}

// New creates a Service.
//
// Example:
//
//	svc := onthisday.New(
//	    onthisday.WithFormat(onthisday.FormatJSON),
//	    onthisday.WithDefaultLanguage("de"),
//	)
//	report, err := svc.Lookup(ctx, onthisday.Request{Random: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
func New(opts ...Option) *Service {
	s := &Service{
		format:          FormatJSON,
		defaultLanguage: DefaultLanguage,
		userAgent:       DefaultUserAgent,
		now:             time.Now,
		logger:          slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.endpoint == "" {
		s.endpoint = DefaultEndpoint(s.format)
	}
	if s.formatter.MaxTokens > 0 && s.formatter.Counter == nil {
		counter, err := NewTiktokenCounter()
		if err != nil {
			s.logger.Warn("token budget disabled", "error", err)
			s.formatter.MaxTokens = 0
		} else {
			s.formatter.Counter = counter
		}
	}

	s.fetcher = NewFetcher(s.httpClient, s.userAgent)
	s.extractor = NewExtractor(s.format)
	return s
}

// Format returns the feed format the service was built with.
func (s *Service) Format() Format {
	return s.format
}

// Lookup resolves the day, fetches the feed once and returns the formatted report.
// Errors are *FetchError, *ParseError, or wrap ErrInvalidDate.
func (s *Service) Lookup(ctx context.Context, req Request) (string, error) {
	lang := req.Language
	if lang == "" {
		lang = s.defaultLanguage
	}

	day := Today(s.now())
	if req.Date != "" {
		md, err := ParseMonthDay(req.Date)
		if err != nil {
			return "", err
		}
		day = md
	}

	url := BuildURL(s.endpoint, lang, day)
	s.logger.Debug("fetching feed", "url", url, "format", s.format)

	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}

	events, err := s.extractor.Extract(body)
	if err != nil {
		return "", err
	}
	s.logger.Debug("feed parsed", "events", len(events), "lang", lang, "day", day.String())

	return s.formatter.Format(lang, events, req.Random), nil
}
