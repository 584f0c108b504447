package model

// PageInfo is one harvested wiki page index entry. AliasOf carries the
// canonical title when this entry was produced from a redirect; for primary
// entries it equals Title.
type PageInfo struct {
	PageID     int64    `json:"pageid"`
	Title      string   `json:"title"`
	Categories []string `json:"categories"`
	AliasOf    string   `json:"alias_of"`
}

// MainCategory returns the first harvestable top-level category the page
// belongs to, or the empty string when none matches.
func (p PageInfo) MainCategory() string {
	for _, want := range RequestCategories {
		for _, got := range p.Categories {
			if got == want {
				return want
			}
		}
	}
	return ""
}
