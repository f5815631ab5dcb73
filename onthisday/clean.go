package onthisday

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var entityReplacer = strings.NewReplacer(
	"&quot;", `"`,
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&nbsp;", " ",
)

// Clean turns an HTML-bearing feed text into plain text.
//
// It removes <style> and <script> elements together with their contents, drops
// every tag whose name is a known HTML element (unknown names such as <tag> are
// kept as text), decodes &quot; &amp; &lt; &gt; and &nbsp;, collapses whitespace
// runs to a single space and trims the result. These steps are repeated until
// the text stops changing, so Clean(Clean(s)) == Clean(s) for every s.
func Clean(s string) string {
	// No step ever lengthens the text, so the fixpoint is reached well within len(s) rounds.
	for rounds := len(s) + 1; rounds > 0; rounds-- {
		next := cleanOnce(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}

func cleanOnce(s string) string {
	s = stripMarkup(s)
	s = entityReplacer.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// stripMarkup re-emits the raw bytes of every token it keeps, so text is never
// entity-decoded here; decoding is limited to entityReplacer.
func stripMarkup(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}

	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	b.Grow(len(s))
	hidden := false

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// An unterminated tag runs to EOF and comes back as the error token's raw bytes.
			if z.Err() == io.EOF && !hidden {
				b.Write(z.Raw())
			}
			return b.String()
		}

		// TagName lower-cases the token buffer in place, copy the raw bytes first.
		raw := append([]byte(nil), z.Raw()...)

		switch tt {
		case html.TextToken:
			if !hidden {
				b.Write(raw)
			}
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if a == atom.Style || a == atom.Script {
				hidden = tt == html.StartTagToken
				continue
			}
			if a == 0 && !hidden {
				b.Write(raw)
			}
		case html.CommentToken, html.DoctypeToken:
			if !bytes.HasSuffix(raw, []byte(">")) && !hidden {
				b.Write(raw)
			}
		}
	}
}
