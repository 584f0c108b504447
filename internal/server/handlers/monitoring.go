package handlers

import (
	"context"
	"net/http"
	"time"

	"git.home.luguber.info/inful/hoyowiki/internal/server/responses"
	"git.home.luguber.info/inful/hoyowiki/internal/version"
)

// IndexStats exposes the index counters the monitoring endpoints report.
type IndexStats interface {
	Count(ctx context.Context) (int64, error)
}

// MonitoringHandlers contains the health and status handlers.
type MonitoringHandlers struct {
	stats      IndexStats
	categories []string
	startTime  time.Time
}

// NewMonitoringHandlers creates a new monitoring handlers instance.
func NewMonitoringHandlers(stats IndexStats, categories []string) *MonitoringHandlers {
	return &MonitoringHandlers{
		stats:      stats,
		categories: categories,
		startTime:  time.Now(),
	}
}

// HandleHealthCheck handles the health check endpoint.
func (h *MonitoringHandlers) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	_ = writeJSONPretty(w, r, http.StatusOK, responses.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   version.Version,
		Uptime:    time.Since(h.startTime).Seconds(),
	})
}

// HandleStatus handles the service status endpoint.
func (h *MonitoringHandlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	status := responses.StatusResponse{
		Status:     "ok",
		Categories: h.categories,
		StartTime:  h.startTime.UTC(),
		Timestamp:  time.Now().UTC(),
	}
	if h.stats != nil {
		if n, err := h.stats.Count(r.Context()); err == nil {
			status.IndexedPages = n
		} else {
			status.Status = "degraded"
		}
	}
	_ = writeJSONPretty(w, r, http.StatusOK, status)
}
