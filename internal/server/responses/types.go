// Package responses defines API response types used by the HTTP handlers.
package responses

import (
	"time"

	"git.home.luguber.info/inful/hoyowiki/internal/display"
	"git.home.luguber.info/inful/hoyowiki/internal/model"
)

// HealthResponse represents the health check API response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    float64   `json:"uptime"`
}

// StatusResponse represents the service's operational status.
type StatusResponse struct {
	Status       string    `json:"status"`
	IndexedPages int64     `json:"indexed_pages"`
	Categories   []string  `json:"categories"`
	StartTime    time.Time `json:"start_time"`
	Timestamp    time.Time `json:"timestamp"`
}

// SearchResponse represents a page search result list.
type SearchResponse struct {
	Query   string           `json:"query"`
	Results []model.PageInfo `json:"results"`
}

// PageResponse represents a rendered page.
type PageResponse struct {
	PageID   int64             `json:"page_id"`
	Title    string            `json:"title"`
	Messages []display.Message `json:"messages"`
	Related  []model.PageInfo  `json:"related,omitempty"`
}

// SyncTriggerResponse represents the response for a manual sync trigger.
type SyncTriggerResponse struct {
	Status    string    `json:"status"`
	JobID     string    `json:"job_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse represents an error API response.
type ErrorResponse struct {
	Status    string    `json:"status"`
	Error     string    `json:"error"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
