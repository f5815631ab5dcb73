package onthisday

import (
	"math/rand/v2"
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"style block removed with contents", "<style>.a{color:red}</style>Hello", "Hello"},
		{"script block removed with contents", "<script>alert(1)</script>Hi", "Hi"},
		{"entities decoded", "A &amp; B &lt;tag&gt;", "A & B <tag>"},
		{"quot and nbsp", "&quot;x&quot;&nbsp;y", `"x" y`},
		{"whitespace collapsed", "a   b\n\tc", "a b c"},
		{"trimmed", "  \n padded \t ", "padded"},
		{"html tags stripped", `<p>The <a href="/wiki/Rome">Roman</a> <b>Senate</b></p>`, "The Roman Senate"},
		{"comment dropped", "before<!-- hidden -->after", "beforeafter"},
		{"self closing tag", "line<br/>break", "linebreak"},
		{"unknown tag kept", "x <tag> y", "x <tag> y"},
		{"other entities untouched", "caf&eacute; &#39;", "caf&eacute; &#39;"},
		{"lone angle bracket", "1 < 2 and 3 > 2", "1 < 2 and 3 > 2"},
		{"empty", "", ""},
		{"nested markup inside style", "<style>p{}</style><style><b>x</b></style>ok", "ok"},
		{"escaped markup becomes plain", "&lt;b&gt;bold&lt;/b&gt;", "bold"},
		{"escaped less-than keeps following text", "Mathematicians prove that a&lt;b implies many results", "Mathematicians prove that a<b implies many results"},
		{"unterminated tag kept as text", "if a<b then c", "if a<b then c"},
		{"unterminated known tag kept as text", "cost <a few dollars", "cost <a few dollars"},
		{"unterminated comment kept as text", "see &lt;!-- open", "see <!-- open"},
		{"unterminated tag inside style dropped", "ok<style>p{} <b", "ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	fixed := []string{
		"A &amp; B &lt;tag&gt;",
		"&amp;lt;b&amp;gt;x&amp;lt;/b&amp;gt;",
		"&amp;quot;quoted&amp;quot;",
		"&amp;amp;amp;",
		"<style>.a{}</style>&lt;style&gt;b{}&lt;/style&gt;text",
		"a &nbsp;&nbsp; b",
		"<p>unterminated <b",
		"a&lt;b implies more",
		"x &lt;!-- open",
		"&lt;!-- note --&gt; visible",
	}
	for _, in := range fixed {
		once := Clean(in)
		if twice := Clean(once); twice != once {
			t.Errorf("Clean not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}

	fragments := []string{
		"<", ">", "&", ";", "amp", "lt", "gt", "quot", "nbsp", "&amp;", "&lt;", "&gt;",
		"b", "p", "style", "script", "tag", "/", " ", "\n", "\t", "x", "1900", "<!--", "-->",
	}
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 2000; i++ {
		var b strings.Builder
		n := 1 + rng.IntN(24)
		for j := 0; j < n; j++ {
			b.WriteString(fragments[rng.IntN(len(fragments))])
		}
		in := b.String()
		once := Clean(in)
		if twice := Clean(once); twice != once {
			t.Fatalf("Clean not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}

func FuzzCleanIdempotent(f *testing.F) {
	f.Add("<style>.a{color:red}</style>Hello")
	f.Add("A &amp; B &lt;tag&gt;")
	f.Add("a   b\n\tc")
	f.Fuzz(func(t *testing.T, in string) {
		once := Clean(in)
		if twice := Clean(once); twice != once {
			t.Errorf("Clean not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	})
}
