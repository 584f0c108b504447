package wikiapi

import "errors"

// ErrPageNotFound indicates the wiki has no revision content for the
// requested page.
var ErrPageNotFound = errors.New("wiki page not found")
