// Package wikitext rewrites MediaWiki-style markup into chat-message Markdown.
//
// The engine recognizes exactly four construct kinds (emphasis runs, inline
// HTML tags, [[wikilinks]] and {{templates}}) and rewrites their delimiter
// regions in place over the original character positions. Everything else in
// the input passes through verbatim. Full MediaWiki grammar coverage (tables,
// references, magic words) is deliberately out of scope.
package wikitext

// Span is a half-open rune-offset range [Start, End) into the source string.
type Span struct {
	Start int
	End   int
}

// Len returns the number of runes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// EmphasisKind distinguishes bold from italic emphasis runs.
type EmphasisKind int

const (
	Bold EmphasisKind = iota
	Italic
)

// Emphasis is a matched bold or italic run. Outer includes the apostrophe
// delimiters on both sides; Inner is exactly the delimited text.
type Emphasis struct {
	Kind  EmphasisKind
	Outer Span
	Inner Span
}

// Tag is a matched inline HTML tag. Identifier is the value of the tag's
// class attribute when present, otherwise the tag name. Inner is nil for
// self-closing tags.
type Tag struct {
	Identifier string
	Outer      Span
	Inner      *Span
}

// Link is a matched [[wikilink]]. Display is nil for plain page links.
// HasNestedLink is set when the bracketed body itself contains another
// complete wikilink (typically an embedded file reference).
type Link struct {
	Outer         Span
	Target        string
	Display       *Span
	HasNestedLink bool
}

// Template is a matched {{template}}. HasNestedTemplate is set when the
// argument region contains another complete template.
type Template struct {
	Identifier        string
	Outer             Span
	HasNestedTemplate bool
}

// ConstructSet holds every construct recognized in a source string, one
// slice per kind, each ordered by ascending start offset. Nested links and
// templates are reported as separate constructs alongside their parents.
type ConstructSet struct {
	Emphasis  []Emphasis
	Tags      []Tag
	Links     []Link
	Templates []Template
}
