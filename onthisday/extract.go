package onthisday

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/gjson"
)

// Event is one historical item from the feed.
type Event struct {
	// Title is the year for the JSON feed and the entry title for the Atom feed.
	Title string
	// Date is the Atom entry's updated timestamp. Empty for the JSON feed.
	Date string
	// Text is the raw description and may contain HTML.
	Text string
}

// Extractor turns a feed payload into events, preserving feed order.
// An empty slice with a nil error means the feed had no events.
type Extractor interface {
	Extract(body []byte) ([]Event, error)
}

// NewExtractor returns the extractor matching f.
func NewExtractor(f Format) Extractor {
	if f == FormatAtom {
		return AtomExtractor{}
	}
	return JSONExtractor{}
}

// JSONExtractor reads the "events" array of the Wikimedia onthisday feed.
type JSONExtractor struct{}

// Extract implements Extractor.
func (JSONExtractor) Extract(body []byte) ([]Event, error) {
	if !gjson.ValidBytes(body) {
		return nil, &ParseError{Kind: string(FormatJSON), Err: errors.New("invalid JSON")}
	}
	events := gjson.GetBytes(body, "events")
	if !events.Exists() {
		return nil, &ParseError{Kind: string(FormatJSON), Err: errors.New(`missing "events" field`)}
	}
	if !events.IsArray() {
		return nil, &ParseError{Kind: string(FormatJSON), Err: fmt.Errorf(`"events" is %s, not an array`, events.Type)}
	}

	out := make([]Event, 0, len(events.Array()))
	events.ForEach(func(_, ev gjson.Result) bool {
		out = append(out, Event{
			Title: ev.Get("year").String(),
			Text:  ev.Get("text").String(),
		})
		return true
	})
	return out, nil
}

type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title   string   `xml:"title"`
	Updated string   `xml:"updated"`
	Content atomText `xml:"content"`
	Summary atomText `xml:"summary"`
}

type atomText struct {
	Type string `xml:"type,attr"`
	Body string `xml:",chardata"`
}

// AtomExtractor reads <entry> elements of the featured-feed Atom document.
// Entries without content or summary are skipped.
type AtomExtractor struct{}

// Extract implements Extractor.
func (AtomExtractor) Extract(body []byte) ([]Event, error) {
	var feed atomFeed
	dec := xml.NewDecoder(bytes.NewReader(body))
	// The feed is UTF-8 in practice; accept other declared charsets as-is.
	dec.CharsetReader = func(_ string, r io.Reader) (io.Reader, error) { return r, nil }
	if err := dec.Decode(&feed); err != nil {
		return nil, &ParseError{Kind: string(FormatAtom), Err: err}
	}

	out := make([]Event, 0, len(feed.Entries))
	for _, e := range feed.Entries {
		text := e.Content.Body
		if text == "" {
			text = e.Summary.Body
		}
		if text == "" {
			continue
		}
		title := strings.TrimSpace(e.Title)
		if title == "" {
			title = "Unknown"
		}
		out = append(out, Event{Title: title, Date: strings.TrimSpace(e.Updated), Text: text})
	}
	return out, nil
}
