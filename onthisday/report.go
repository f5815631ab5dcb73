package onthisday

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

const (
	// NoEventsMessage is the report body when the feed has no entries.
	NoEventsMessage = "No events found for the specified date."

	entrySeparator = "---"
	entryMarker    = "📅"
)

var headerRule = strings.Repeat("=", 43)

// Picker returns an index in [0, n). It is used for random selection.
type Picker func(n int) int

// Formatter renders events into the plain-text report.
type Formatter struct {
	// Pick selects the entry in random mode. Nil means math/rand/v2.
	Pick Picker
	// MaxTokens bounds the report size when greater than zero.
	MaxTokens int
	// Counter measures tokens for MaxTokens. Required when MaxTokens > 0.
	Counter TokenCounter
}

// Format builds the report for lang. With random set, exactly one entry is rendered.
func (f *Formatter) Format(lang string, events []Event, random bool) string {
	if lang == "" {
		lang = DefaultLanguage
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Wikipedia \"On This Day\" Events (%s)\n", strings.ToUpper(lang))
	b.WriteString(headerRule)
	b.WriteString("\n\n")

	if len(events) == 0 {
		b.WriteString(NoEventsMessage)
		return b.String()
	}

	if random {
		b.WriteString(renderEntry(events[f.pick(len(events))]))
		return b.String()
	}

	header := b.String()
	blocks := make([]string, len(events))
	for i, ev := range events {
		blocks[i] = renderEntry(ev)
	}
	return f.fit(header, blocks)
}

func (f *Formatter) pick(n int) int {
	if f.Pick != nil {
		return f.Pick(n)
	}
	return rand.IntN(n)
}

// fit joins blocks under header, dropping trailing blocks while the token budget is exceeded.
func (f *Formatter) fit(header string, blocks []string) string {
	full := header + joinEntries(blocks)
	if f.MaxTokens <= 0 || f.Counter == nil || f.Counter.CountTokens(full) <= f.MaxTokens {
		return full
	}

	for keep := len(blocks) - 1; keep >= 0; keep-- {
		candidate := header + joinEntries(blocks[:keep])
		if keep > 0 {
			candidate += "\n\n"
		}
		candidate += fmt.Sprintf("(%d more events omitted)", len(blocks)-keep)
		if keep == 0 || f.Counter.CountTokens(candidate) <= f.MaxTokens {
			return candidate
		}
	}
	return full
}

func joinEntries(blocks []string) string {
	return strings.Join(blocks, "\n\n"+entrySeparator+"\n\n")
}

func renderEntry(ev Event) string {
	title := ev.Title
	if ev.Date != "" {
		title = fmt.Sprintf("%s (%s)", title, ev.Date)
	}
	return fmt.Sprintf("%s %s\n%s", entryMarker, title, Clean(ev.Text))
}
