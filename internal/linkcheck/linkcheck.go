// Package linkcheck extracts link targets from rendered output so syncs and
// previews can verify that generated hyperlinks resolve against the wiki.
package linkcheck

import (
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
)

// LinkKind classifies where an extracted link came from.
type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindAuto                LinkKind = "auto"
	LinkKindImage               LinkKind = "image"
	LinkKindReferenceDefinition LinkKind = "reference"
	LinkKindAnchor              LinkKind = "anchor"
)

// Link is a single extracted link target.
type Link struct {
	Kind        LinkKind
	Destination string
	Text        string
}

// ExtractMarkdownLinks parses a Markdown body and extracts link-like
// constructs. This is an analysis API; it does not attempt to re-render
// Markdown.
func ExtractMarkdownLinks(body []byte) []Link {
	md := goldmark.New()
	ctx := parser.NewContext()
	root := md.Parser().Parse(text.NewReader(body), parser.WithContext(ctx))

	links := make([]Link, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, Link{Kind: LinkKindAuto, Destination: string(node.URL(body))})
		case *gmast.Image:
			links = append(links, Link{Kind: LinkKindImage, Destination: string(node.Destination)})
		case *gmast.Link:
			// Goldmark resolves reference-style links to a Link node with a Destination.
			links = append(links, Link{Kind: LinkKindInline, Destination: string(node.Destination), Text: linkText(node, body)})
		}
		return gmast.WalkContinue, nil
	})

	// Reference definitions are stored in the parse context (not represented as AST nodes).
	refs := ctx.References()
	sort.Slice(refs, func(i, j int) bool {
		return string(refs[i].Label()) < string(refs[j].Label())
	})
	for _, ref := range refs {
		links = append(links, Link{Kind: LinkKindReferenceDefinition, Destination: string(ref.Destination())})
	}

	return links
}

func linkText(n gmast.Node, body []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*gmast.Text); ok {
			b.Write(t.Segment.Value(body))
		}
	}
	return b.String()
}

// ExtractHTMLLinks extracts anchor and image targets from an HTML document,
// such as a rendered page preview.
func ExtractHTMLLinks(r io.Reader) ([]Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	var links []Link
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "a":
				if href := getAttr(n, "href"); href != "" {
					links = append(links, Link{Kind: LinkKindAnchor, Destination: href, Text: extractText(n)})
				}
			case "img":
				if src := getAttr(n, "src"); src != "" {
					links = append(links, Link{Kind: LinkKindImage, Destination: src, Text: getAttr(n, "alt")})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(doc)
	return links, nil
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// extractText extracts text content from an HTML node and its children.
func extractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text.WriteString(extractText(c))
	}
	return strings.TrimSpace(text.String())
}

// OnWiki reports whether a destination points at the given wiki host.
// Relative destinations and fragments count as on-wiki.
func OnWiki(destination, base string) bool {
	if destination == "" || strings.HasPrefix(destination, "#") {
		return true
	}
	u, err := url.Parse(destination)
	if err != nil {
		return false
	}
	if u.Scheme == "" || u.Host == "" {
		return true
	}
	b, err := url.Parse(base)
	if err != nil {
		return false
	}
	return u.Host == b.Host
}

// FilterOffWiki returns the links whose destination does not resolve to the
// wiki host. Useful when a sync wants to flag renderings that leak foreign
// URLs.
func FilterOffWiki(links []Link, base string) []Link {
	var out []Link
	for _, l := range links {
		if !OnWiki(l.Destination, base) {
			out = append(out, l)
		}
	}
	return out
}
