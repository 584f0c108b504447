package wikiapi

import "encoding/json"

// apiResponse is the envelope of an action=query response. BatchComplete is
// present (as an empty string) on the final page of a continued query, so
// only its presence matters.
type apiResponse struct {
	BatchComplete json.RawMessage   `json:"batchcomplete"`
	Continue      map[string]string `json:"continue"`
	Warnings      map[string]warning `json:"warnings"`
	Query         struct {
		Pages map[string]json.RawMessage `json:"pages"`
	} `json:"query"`
}

type warning struct {
	Text string `json:"*"`
}

// titleRef is a namespaced title reference (category membership, redirect).
type titleRef struct {
	NS    int    `json:"ns"`
	Title string `json:"title"`
}

// pageInfoPayload is one page record of a category-member harvest.
type pageInfoPayload struct {
	PageID     int64      `json:"pageid"`
	NS         int        `json:"ns"`
	Title      string     `json:"title"`
	Categories []titleRef `json:"categories"`
	Redirects  []titleRef `json:"redirects"`
}

// revisionPayload is one page record of a revision-content query.
type revisionPayload struct {
	PageID    int64  `json:"pageid"`
	Title     string `json:"title"`
	Revisions []struct {
		Slots struct {
			Main struct {
				ContentModel  string `json:"contentmodel"`
				ContentFormat string `json:"contentformat"`
				Content       string `json:"*"`
			} `json:"main"`
		} `json:"slots"`
	} `json:"revisions"`
}

// Revision is the wikitext content of one page revision.
type Revision struct {
	PageID  int64
	Title   string
	Content string
}
