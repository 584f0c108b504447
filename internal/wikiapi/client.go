// Package wikiapi is a minimal MediaWiki API client covering the two
// operations the service needs: harvesting page-info records from a category
// and fetching the wikitext content of a single page revision. Continued
// queries are followed transparently.
package wikiapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"git.home.luguber.info/inful/hoyowiki/internal/metrics"
	"git.home.luguber.info/inful/hoyowiki/internal/model"
	"git.home.luguber.info/inful/hoyowiki/internal/retry"
)

// DefaultEndpoint is the HI3 wiki api.php endpoint.
const DefaultEndpoint = "https://honkaiimpact3.fandom.com/api.php"

const defaultUserAgent = "hoyowiki (+https://git.home.luguber.info/inful/hoyowiki)"

// rarityTitlePattern strips the per-rarity suffix some page titles carry
// ("Key of Reason/4-star" and friends index under their base title).
var rarityTitlePattern = regexp.MustCompile(`(?i)/\d-star$`)

// Client talks to one MediaWiki api.php endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	userAgent  string
	retry      retry.Policy
	recorder   metrics.Recorder
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUserAgent overrides the request user agent.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithRetryPolicy replaces the default backoff policy for transient failures.
func WithRetryPolicy(p retry.Policy) Option {
	return func(c *Client) { c.retry = p }
}

// WithRecorder sets the metrics recorder (default: noop).
func WithRecorder(r metrics.Recorder) Option {
	return func(c *Client) {
		if r != nil {
			c.recorder = r
		}
	}
}

// New creates a Client for the given api.php endpoint. An empty endpoint
// selects DefaultEndpoint.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		endpoint:   endpoint,
		userAgent:  defaultUserAgent,
		retry:      retry.DefaultPolicy(),
		recorder:   metrics.NoopRecorder{},
	}
	if c.endpoint == "" {
		c.endpoint = DefaultEndpoint
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// query runs an action=query request and feeds each page object of every
// result chunk to fn, following the continuation token until the API reports
// the batch complete.
func (c *Client) query(ctx context.Context, operation string, params url.Values, fn func(page json.RawMessage) error) error {
	cont := map[string]string{}
	for {
		values := url.Values{}
		for k, vs := range params {
			values[k] = vs
		}
		values.Set("action", "query")
		values.Set("format", "json")
		for k, v := range cont {
			values.Set(k, v)
		}

		resp, err := c.get(ctx, operation, values)
		if err != nil {
			return err
		}

		for item, warn := range resp.Warnings {
			slog.Warn("Wiki API warning", "item", item, "warning", warn.Text)
		}

		for _, page := range resp.Query.Pages {
			if err := fn(page); err != nil {
				return err
			}
		}

		if len(resp.BatchComplete) > 0 || len(resp.Continue) == 0 {
			return nil
		}
		cont = resp.Continue
	}
}

// get performs one API call, retrying transient failures (network errors,
// 429 and 5xx responses) per the client's backoff policy. Every attempt is
// observed individually, labeled by operation.
func (c *Client) get(ctx context.Context, operation string, values url.Values) (*apiResponse, error) {
	var lastErr error
	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		if attempt > 0 {
			slog.Debug("Retrying wiki API request", "attempt", attempt, "delay", c.retry.Delay(attempt))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retry.Delay(attempt)):
			}
		}

		start := time.Now()
		parsed, transient, err := c.doGet(ctx, values)
		c.recorder.ObserveAPIRequestDuration(operation, time.Since(start), err == nil)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
		if !transient {
			return nil, err
		}
	}
	return nil, lastErr
}

func (c *Client) doGet(ctx context.Context, values url.Values) (*apiResponse, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+values.Encode(), nil)
	if err != nil {
		return nil, false, fmt.Errorf("build wiki API request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		return nil, true, fmt.Errorf("wiki API request: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, res.Body)
		_ = res.Body.Close()
	}()

	if res.StatusCode != http.StatusOK {
		transient := res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= 500
		return nil, transient, fmt.Errorf("wiki API returned status %d", res.StatusCode)
	}

	var parsed apiResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, false, fmt.Errorf("decode wiki API response: %w", err)
	}
	return &parsed, false, nil
}

// ListCategoryPages harvests page-info records for every member of a wiki
// category, unpacking redirects into alias entries and de-duplicating by
// title. Records that fail to decode are skipped, not fatal; the wiki carries
// a handful of misfiled pages and under-recognition is the contract.
func (c *Client) ListCategoryPages(ctx context.Context, category string) ([]model.PageInfo, error) {
	params := url.Values{
		"generator": {"categorymembers"},
		"gcmtitle":  {category},
		"gcmlimit":  {"max"},
		"prop":      {"categories|redirects"},
		"cllimit":   {"max"},
		"rdlimit":   {"max"},
	}

	seen := map[string]bool{}
	var infos []model.PageInfo
	err := c.query(ctx, "list_category_pages", params, func(raw json.RawMessage) error {
		var page pageInfoPayload
		if err := json.Unmarshal(raw, &page); err != nil || page.PageID == 0 || page.Title == "" {
			slog.Debug("Skipping malformed page-info record", "category", category)
			return nil
		}

		title := rarityTitlePattern.ReplaceAllString(page.Title, "")
		categories := make([]string, 0, len(page.Categories))
		for _, cat := range page.Categories {
			categories = append(categories, cat.Title)
		}

		add := func(entryTitle string) {
			if seen[entryTitle] {
				return
			}
			seen[entryTitle] = true
			infos = append(infos, model.PageInfo{
				PageID:     page.PageID,
				Title:      entryTitle,
				Categories: categories,
				AliasOf:    title,
			})
		}

		add(title)
		for _, redirect := range page.Redirects {
			// Redirects that merely restate the primary title add no alias.
			if strings.Contains(strings.ToLower(redirect.Title), strings.ToLower(title)) {
				continue
			}
			add(rarityTitlePattern.ReplaceAllString(redirect.Title, ""))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list category %q: %w", category, err)
	}

	slog.Debug("Harvested category pages", "category", category, "pages", len(infos))
	return infos, nil
}

// FetchRevision fetches the current wikitext content of a page by ID.
func (c *Client) FetchRevision(ctx context.Context, pageID int64) (*Revision, error) {
	params := url.Values{
		"prop":    {"revisions"},
		"pageids": {strconv.FormatInt(pageID, 10)},
		"rvprop":  {"content"},
		"rvslots": {"main"},
	}

	var rev *Revision
	err := c.query(ctx, "fetch_revision", params, func(raw json.RawMessage) error {
		var page revisionPayload
		if err := json.Unmarshal(raw, &page); err != nil {
			return fmt.Errorf("decode revision record: %w", err)
		}
		if len(page.Revisions) == 0 {
			return nil
		}
		rev = &Revision{
			PageID:  page.PageID,
			Title:   page.Title,
			Content: page.Revisions[0].Slots.Main.Content,
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch revision %d: %w", pageID, err)
	}
	if rev == nil {
		return nil, fmt.Errorf("fetch revision %d: %w", pageID, ErrPageNotFound)
	}
	return rev, nil
}
