package wikitext

// LinkFormatter resolves a plain page link into its Markdown hyperlink form.
// The target name doubles as the visible text.
type LinkFormatter interface {
	Hyperlink(display string) string
}

// Table maps a construct identifier (tag name, class attribute value, or
// template name) to its replacement token. An identifier with no entry is
// deleted entirely; it is never substituted by itself.
type Table map[string]string

// DefaultTagTable returns the stock tag replacements: emphasis-like classes
// become bold markers and <br> becomes a newline.
func DefaultTagTable() Table {
	return Table{
		"inc":        "**",
		"increase":   "**",
		"inco":       "**",
		"color-blue": "**",
		"br":         "\n",
	}
}

// DefaultTemplateTable returns the stock template replacements.
func DefaultTemplateTable() Table {
	return Table{
		"star": "★",
	}
}

const (
	boldToken   = "**"
	italicToken = "_"

	// Nested and piped links are not expanded; their spans collapse to fixed
	// placeholder tokens instead (carried over from the original behavior).
	nestedLinkPlaceholder = "<placeholder1>"
	pipedLinkPlaceholder  = "<placeholder2>"
)

// Transcoder rewrites wiki markup into chat Markdown. The replacement tables
// and link formatter are fixed at construction; a Transcoder is stateless
// across calls and safe for concurrent use.
type Transcoder struct {
	tags      Table
	templates Table
	links     LinkFormatter
}

// NewTranscoder builds a Transcoder from the given replacement tables and
// link formatter. Nil tables fall back to the stock defaults; a nil formatter
// reduces plain links to their bare target text.
func NewTranscoder(tags, templates Table, links LinkFormatter) *Transcoder {
	if tags == nil {
		tags = DefaultTagTable()
	}
	if templates == nil {
		templates = DefaultTemplateTable()
	}
	if links == nil {
		links = bareLinkFormatter{}
	}
	return &Transcoder{tags: tags, templates: templates, links: links}
}

// bareLinkFormatter drops the markup and keeps the target text.
type bareLinkFormatter struct{}

func (bareLinkFormatter) Hyperlink(display string) string { return display }

// Transcode rewrites every recognized construct in source and returns the
// result. Unrecognized markup passes through verbatim; the function is total
// over its input and never fails.
//
// The four passes run in fixed order (emphasis, tags, links, templates), all
// writing into one overlay seeded from source. Each pass only ever touches a
// construct's delimiter regions, never its interior, so replacements made by
// earlier passes survive later ones.
func (t *Transcoder) Transcode(source string) string {
	set := Parse(source)
	ov := newOverlay(source)

	t.rewriteEmphasis(ov, set.Emphasis)
	t.rewriteTags(ov, set.Tags)
	t.rewriteLinks(ov, set.Links)
	t.rewriteTemplates(ov, set.Templates)

	return ov.compact()
}

func (t *Transcoder) rewriteEmphasis(ov *overlay, ems []Emphasis) {
	for _, em := range ems {
		token := italicToken
		if em.Kind == Bold {
			token = boldToken
		}
		ov.replace(Span{em.Outer.Start, em.Inner.Start}, token)
		ov.replace(Span{em.Inner.End, em.Outer.End}, token)
	}
}

func (t *Transcoder) rewriteTags(ov *overlay, tags []Tag) {
	for _, tag := range tags {
		token := t.tags[tag.Identifier] // missing entry ⇒ delete
		if tag.Inner == nil {
			ov.replace(tag.Outer, token)
			continue
		}
		ov.replace(Span{tag.Outer.Start, tag.Inner.Start}, token)
		ov.replace(Span{tag.Inner.End, tag.Outer.End}, token)
	}
}

func (t *Transcoder) rewriteLinks(ov *overlay, links []Link) {
	for _, link := range links {
		switch {
		case link.HasNestedLink:
			// Embedded file/image references are not expanded.
			ov.replace(link.Outer, nestedLinkPlaceholder)
		case link.Display != nil:
			ov.replace(Span{link.Outer.Start, link.Display.Start}, pipedLinkPlaceholder)
			ov.delete(Span{link.Display.End, link.Outer.End})
		default:
			ov.replace(link.Outer, t.links.Hyperlink(link.Target))
		}
	}
}

func (t *Transcoder) rewriteTemplates(ov *overlay, tpls []Template) {
	for _, tpl := range tpls {
		if tpl.HasNestedTemplate {
			// The outer template's delimiters stay literal; its nested
			// templates are resolved on their own as the pass reaches them.
			continue
		}
		ov.replace(tpl.Outer, t.templates[tpl.Identifier])
	}
}
