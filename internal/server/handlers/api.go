package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"

	"git.home.luguber.info/inful/hoyowiki/internal/content"
	"git.home.luguber.info/inful/hoyowiki/internal/index"
	"git.home.luguber.info/inful/hoyowiki/internal/linkcheck"
	"git.home.luguber.info/inful/hoyowiki/internal/logfields"
	"git.home.luguber.info/inful/hoyowiki/internal/model"
	"git.home.luguber.info/inful/hoyowiki/internal/server/responses"
	"git.home.luguber.info/inful/hoyowiki/internal/wikiapi"
)

// searchLimit bounds the number of search results returned per request.
const searchLimit = 25

// ContentService is the rendered-content read path the API serves from.
type ContentService interface {
	Page(ctx context.Context, pageID int64) (*content.Rendered, error)
	PageByTitle(ctx context.Context, title string) (*content.Rendered, error)
}

// PageSearcher queries the local page index.
type PageSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]model.PageInfo, error)
}

// SyncTrigger starts a full category sync.
type SyncTrigger interface {
	SyncAll(ctx context.Context, categories []string) error
}

// APIHandlers contains the wiki content API handlers.
type APIHandlers struct {
	content    ContentService
	searcher   PageSearcher
	syncer     SyncTrigger
	categories []string
	wikiBase   string
}

// NewAPIHandlers creates a new API handlers instance. The syncer may be nil
// when manual sync triggering is not wired (render-only mode).
func NewAPIHandlers(svc ContentService, searcher PageSearcher, syncer SyncTrigger, categories []string, wikiBase string) *APIHandlers {
	return &APIHandlers{content: svc, searcher: searcher, syncer: syncer, categories: categories, wikiBase: wikiBase}
}

// HandleSearch handles GET /api/pages?q=<query>.
func (h *APIHandlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter q", nil)
		return
	}

	results, err := h.searcher.Search(r.Context(), query, searchLimit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "search failed", err)
		return
	}
	if results == nil {
		results = []model.PageInfo{}
	}
	_ = writeJSONPretty(w, r, http.StatusOK, responses.SearchResponse{Query: query, Results: results})
}

// HandlePage handles GET /api/pages/{id}. The path value is a numeric page ID
// or a page title/alias.
func (h *APIHandlers) HandlePage(w http.ResponseWriter, r *http.Request) {
	rendered, ok := h.renderFromPath(w, r)
	if !ok {
		return
	}
	_ = writeJSONPretty(w, r, http.StatusOK, responses.PageResponse{
		PageID:   rendered.PageID,
		Title:    rendered.Title,
		Messages: rendered.Messages,
		Related:  rendered.Related,
	})
}

// HandlePreview handles GET /api/pages/{id}/preview, returning the rendered
// messages converted to HTML.
func (h *APIHandlers) HandlePreview(w http.ResponseWriter, r *http.Request) {
	rendered, ok := h.renderFromPath(w, r)
	if !ok {
		return
	}

	var md bytes.Buffer
	for _, msg := range rendered.Messages {
		if msg.Title != "" {
			fmt.Fprintf(&md, "## %s\n\n", msg.Title)
		}
		if msg.Description != "" {
			fmt.Fprintf(&md, "%s\n\n", msg.Description)
		}
		for _, field := range msg.Fields {
			fmt.Fprintf(&md, "### %s\n\n%s\n\n", field.Name, field.Value)
		}
	}

	var html bytes.Buffer
	if err := goldmark.Convert(md.Bytes(), &html); err != nil {
		writeError(w, http.StatusInternalServerError, "preview rendering failed", err)
		return
	}

	if links, err := linkcheck.ExtractHTMLLinks(bytes.NewReader(html.Bytes())); err == nil {
		for _, link := range linkcheck.FilterOffWiki(links, h.wikiBase) {
			slog.Warn("Preview links off-wiki destination",
				logfields.PageID(rendered.PageID), "destination", link.Destination)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(html.Bytes())
}

// renderFromPath resolves the {id} path value and renders the page, writing
// the error response itself when resolution fails.
func (h *APIHandlers) renderFromPath(w http.ResponseWriter, r *http.Request) (*content.Rendered, bool) {
	ref := r.PathValue("id")
	if ref == "" {
		writeError(w, http.StatusBadRequest, "missing page reference", nil)
		return nil, false
	}

	var rendered *content.Rendered
	var err error
	if pageID, convErr := strconv.ParseInt(ref, 10, 64); convErr == nil {
		rendered, err = h.content.Page(r.Context(), pageID)
	} else {
		rendered, err = h.content.PageByTitle(r.Context(), ref)
	}

	switch {
	case err == nil:
		return rendered, true
	case errors.Is(err, index.ErrNotFound), errors.Is(err, wikiapi.ErrPageNotFound):
		writeError(w, http.StatusNotFound, "page not found", err)
	case errors.Is(err, model.ErrUnknownContent):
		writeError(w, http.StatusUnprocessableEntity, "page has no renderable content", err)
	default:
		writeError(w, http.StatusInternalServerError, "page rendering failed", err)
	}
	return nil, false
}

// HandleSync handles POST /api/sync, starting a full category sync in the
// background.
func (h *APIHandlers) HandleSync(w http.ResponseWriter, r *http.Request) {
	if h.syncer == nil {
		writeError(w, http.StatusServiceUnavailable, "sync not available", nil)
		return
	}

	jobID := uuid.NewString()
	go func() {
		// Detach from the request context; the sync outlives the response.
		if err := h.syncer.SyncAll(context.Background(), h.categories); err != nil {
			slog.Error("Triggered sync failed", logfields.JobID(jobID), logfields.Error(err))
		}
	}()

	_ = writeJSON(w, http.StatusAccepted, responses.SyncTriggerResponse{
		Status:    "accepted",
		JobID:     jobID,
		Timestamp: time.Now().UTC(),
	})
}
