package onthisday

import (
	"fmt"
	"net/url"
	"strings"
)

// Format selects which feed endpoint and payload shape is used.
type Format string

const (
	// FormatJSON is the Wikimedia REST feed. It is date addressable and structured.
	FormatJSON Format = "json"
	// FormatAtom is the featured-feed Atom document. It always describes the server's "today".
	FormatAtom Format = "atom"
)

const (
	// DefaultLanguage is used when a request carries no language code.
	DefaultLanguage = "en"

	// DefaultJSONEndpoint is the endpoint template for FormatJSON.
	DefaultJSONEndpoint = "https://api.wikimedia.org/feed/v1/wikipedia/{lang}/onthisday/all/{month}/{day}"

	// DefaultAtomEndpoint is the endpoint template for FormatAtom.
	DefaultAtomEndpoint = "https://{lang}.wikipedia.org/w/api.php?action=featuredfeed&feed=onthisday&feedformat=atom"
)

// ParseFormat converts a config or flag value into a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatAtom:
		return FormatAtom, nil
	default:
		return "", fmt.Errorf("unsupported feed format: %s", s)
	}
}

// DefaultEndpoint returns the built-in endpoint template for f.
func DefaultEndpoint(f Format) string {
	if f == FormatAtom {
		return DefaultAtomEndpoint
	}
	return DefaultJSONEndpoint
}

// BuildURL expands an endpoint template. The placeholders {lang}, {month} and {day}
// are substituted; a template without {month}/{day} is date independent.
//
// Example:
//
//	u := onthisday.BuildURL(onthisday.DefaultJSONEndpoint, "de", onthisday.MonthDay{Month: 3, Day: 7})
//	// https://api.wikimedia.org/feed/v1/wikipedia/de/onthisday/all/03/07
func BuildURL(template, lang string, md MonthDay) string {
	if lang == "" {
		lang = DefaultLanguage
	}
	// Host labels cannot be escaped, so the raw code is used when it lands in the host.
	langValue := url.PathEscape(lang)
	if strings.Contains(template, "{lang}.") {
		langValue = lang
	}
	r := strings.NewReplacer(
		"{lang}", langValue,
		"{month}", md.MonthString(),
		"{day}", md.DayString(),
	)
	return r.Replace(template)
}
