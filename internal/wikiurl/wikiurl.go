// Package wikiurl builds wiki page and image URLs and Markdown hyperlinks
// from display names. All functions are pure string transforms; no network
// access happens here.
package wikiurl

import (
	"net/url"
	"strings"
)

// DefaultBase is the wiki page base used when no explicit base is configured.
const DefaultBase = "https://honkaiimpact3.fandom.com/wiki/"

// Normalize converts a display name into the path the wiki is most likely to
// recognize: spaces become underscores, colons become "_-", and each path
// segment is percent-encoded. Slashes separate subpages and stay literal.
func Normalize(name string) string {
	s := strings.ReplaceAll(name, " ", "_")
	s = strings.ReplaceAll(s, ":", "_-")
	segments := strings.Split(s, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}

// Resolver composes page and image URLs against a fixed wiki base address.
// The zero value is not usable; construct one with New.
type Resolver struct {
	base string
}

// New returns a Resolver for the given wiki base URL. An empty base selects
// DefaultBase. The base is used verbatim as a prefix, so it should end in a
// path separator.
func New(base string) *Resolver {
	if base == "" {
		base = DefaultBase
	}
	return &Resolver{base: base}
}

// PageURL returns the wiki page URL for a display name.
func (r *Resolver) PageURL(name string) string {
	return r.base + Normalize(name)
}

// ImageURL returns the file-redirect URL for a named image asset.
func (r *Resolver) ImageURL(name string) string {
	return r.base + "Special:Redirect/file/" + Normalize(name) + ".png"
}

// Hyperlink formats a page link in Markdown, using the display name both as
// link text and as the page URL source.
func (r *Resolver) Hyperlink(display string) string {
	return HyperlinkTo(display, r.PageURL(display))
}

// HyperlinkTo formats an explicit Markdown hyperlink.
func HyperlinkTo(display, target string) string {
	return "[" + display + "](" + target + ")"
}
