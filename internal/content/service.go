// Package content orchestrates the read path: resolve a page through the
// index, fetch its revision from the wiki, parse it into a record and render
// chat messages, with a cache in front so repeat lookups skip the wiki API.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/hoyowiki/internal/contentcache"
	"git.home.luguber.info/inful/hoyowiki/internal/display"
	"git.home.luguber.info/inful/hoyowiki/internal/logfields"
	"git.home.luguber.info/inful/hoyowiki/internal/metrics"
	"git.home.luguber.info/inful/hoyowiki/internal/model"
	"git.home.luguber.info/inful/hoyowiki/internal/wikiapi"
	"git.home.luguber.info/inful/hoyowiki/internal/wikitext"
)

// RevisionFetcher fetches the current revision of a wiki page.
type RevisionFetcher interface {
	FetchRevision(ctx context.Context, pageID int64) (*wikiapi.Revision, error)
}

// PageIndex resolves page titles and IDs against the local index.
type PageIndex interface {
	ByTitle(ctx context.Context, title string) (model.PageInfo, error)
	ByID(ctx context.Context, pageID int64) (model.PageInfo, error)
	ByTitles(ctx context.Context, titles []string) ([]model.PageInfo, error)
}

// Service is the rendered-content read path. Construct with New.
type Service struct {
	wiki     RevisionFetcher
	index    PageIndex
	cache    contentcache.Cache
	renderer *display.Renderer
	recorder metrics.Recorder
}

// New builds a content Service. A nil cache disables caching entirely; a nil
// renderer gets the stock tables and wiki base.
func New(wiki RevisionFetcher, idx PageIndex, cache contentcache.Cache, renderer *display.Renderer) *Service {
	if renderer == nil {
		renderer = display.NewRenderer(nil, nil)
	}
	return &Service{
		wiki:     wiki,
		index:    idx,
		cache:    cache,
		renderer: renderer,
		recorder: metrics.NoopRecorder{},
	}
}

// WithRecorder sets the metrics recorder (default: noop).
func (s *Service) WithRecorder(r metrics.Recorder) *Service {
	if r != nil {
		s.recorder = r
	}
	return s
}

// Rendered is a fully rendered page, as cached and as served.
type Rendered struct {
	PageID   int64             `json:"page_id"`
	Title    string            `json:"title"`
	Messages []display.Message `json:"messages"`
	Related  []model.PageInfo  `json:"related,omitempty"`
}

func cacheKey(pageID int64) string { return fmt.Sprintf("page:%d", pageID) }

// Page returns the rendered messages for a page ID, serving from cache when
// the entry is still live.
func (s *Service) Page(ctx context.Context, pageID int64) (*Rendered, error) {
	if cached, ok := s.fromCache(ctx, pageID); ok {
		return cached, nil
	}

	rev, err := s.wiki.FetchRevision(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("fetch revision for page %d: %w", pageID, err)
	}

	args := wikitext.TemplateArguments(rev.Content)
	record, err := model.ParseRecord(args)
	if err != nil {
		return nil, fmt.Errorf("parse page %d (%s): %w", rev.PageID, rev.Title, err)
	}

	set := wikitext.Parse(rev.Content)
	s.recorder.AddConstructs("emphasis", len(set.Emphasis))
	s.recorder.AddConstructs("tag", len(set.Tags))
	s.recorder.AddConstructs("link", len(set.Links))
	s.recorder.AddConstructs("template", len(set.Templates))

	start := time.Now()
	msgs, err := s.renderer.Record(record)
	if err != nil {
		return nil, fmt.Errorf("render page %d (%s): %w", rev.PageID, rev.Title, err)
	}
	s.recorder.ObserveTranscodeDuration(time.Since(start))

	rendered := &Rendered{
		PageID:   rev.PageID,
		Title:    rev.Title,
		Messages: msgs,
		Related:  s.resolveRelated(ctx, rev, record, set.Links),
	}
	s.toCache(ctx, pageID, rendered)
	return rendered, nil
}

// PageByTitle resolves a title (or alias) through the index and renders the
// page it refers to.
func (s *Service) PageByTitle(ctx context.Context, title string) (*Rendered, error) {
	info, err := s.index.ByTitle(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("resolve title %q: %w", title, err)
	}
	return s.Page(ctx, info.PageID)
}

// Related returns the index entries for pages a rendered record links out to,
// such as a battlesuit's recommended equipment. Unknown names are skipped.
func (s *Service) Related(ctx context.Context, record model.Record) ([]model.PageInfo, error) {
	titles := recordTitles(record)
	if len(titles) == 0 || s.index == nil {
		return nil, nil
	}
	return s.index.ByTitles(ctx, titles)
}

func recordTitles(record model.Record) []string {
	var titles []string
	switch v := record.(type) {
	case *model.Battlesuit:
		titles = v.EquipmentNames()
		if v.Character != "" {
			titles = append(titles, v.Character)
		}
	case *model.Weapon:
		if v.IsPriArm() {
			titles = []string{v.PriArmBase}
		}
	case *model.StigmataSet:
		// Stigmata sets only link to themselves.
	}
	return titles
}

// resolveRelated combines the record's cross references with the plain
// wikilink targets of the revision text and resolves them against the index.
// Resolution is best-effort; a degraded index only costs the related list.
func (s *Service) resolveRelated(ctx context.Context, rev *wikiapi.Revision, record model.Record, links []wikitext.Link) []model.PageInfo {
	if s.index == nil {
		return nil
	}

	titles := recordTitles(record)
	for _, link := range links {
		if link.HasNestedLink || link.Display != nil {
			continue
		}
		titles = append(titles, link.Target)
	}

	seen := map[string]bool{rev.Title: true}
	unique := titles[:0]
	for _, title := range titles {
		if title == "" || seen[title] {
			continue
		}
		seen[title] = true
		unique = append(unique, title)
	}
	if len(unique) == 0 {
		return nil
	}

	infos, err := s.index.ByTitles(ctx, unique)
	if err != nil {
		slog.Warn("Related page lookup failed", logfields.PageID(rev.PageID), logfields.Error(err))
		return nil
	}
	return infos
}

func (s *Service) fromCache(ctx context.Context, pageID int64) (*Rendered, bool) {
	if s.cache == nil {
		return nil, false
	}
	blob, ok, err := s.cache.Get(ctx, cacheKey(pageID))
	if err != nil {
		slog.Warn("Content cache read failed", logfields.PageID(pageID), logfields.Error(err))
		return nil, false
	}
	s.recorder.IncCacheResult(ok)
	if !ok {
		return nil, false
	}

	var rendered Rendered
	if err := json.Unmarshal(blob, &rendered); err != nil {
		slog.Warn("Discarding undecodable cache entry", logfields.PageID(pageID), logfields.Error(err))
		return nil, false
	}
	return &rendered, true
}

func (s *Service) toCache(ctx context.Context, pageID int64, rendered *Rendered) {
	if s.cache == nil {
		return
	}
	blob, err := json.Marshal(rendered)
	if err != nil {
		slog.Warn("Content cache encode failed", logfields.PageID(pageID), logfields.Error(err))
		return
	}
	if err := s.cache.Set(ctx, cacheKey(pageID), blob); err != nil {
		slog.Warn("Content cache write failed", logfields.PageID(pageID), logfields.Error(err))
	}
}
