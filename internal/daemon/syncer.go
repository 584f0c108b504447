// Package daemon keeps the local page index in step with the wiki: periodic
// category syncs on a scheduler, plus a watcher that reloads configuration
// edits without a restart.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/hoyowiki/internal/contentcache"
	"git.home.luguber.info/inful/hoyowiki/internal/logfields"
	"git.home.luguber.info/inful/hoyowiki/internal/metrics"
	"git.home.luguber.info/inful/hoyowiki/internal/model"
)

// CategoryLister lists the member pages of a wiki category.
type CategoryLister interface {
	ListCategoryPages(ctx context.Context, category string) ([]model.PageInfo, error)
}

// IndexWriter replaces category contents in the local page index.
type IndexWriter interface {
	ReplaceCategory(ctx context.Context, category string, infos []model.PageInfo) error
	Count(ctx context.Context) (int64, error)
}

// SyncPublisher broadcasts completed syncs to downstream consumers.
type SyncPublisher interface {
	PublishSync(ctx context.Context, event contentcache.SyncEvent) error
}

// Syncer harvests wiki categories into the page index.
type Syncer struct {
	wiki      CategoryLister
	index     IndexWriter
	publisher SyncPublisher
	recorder  metrics.Recorder
}

// NewSyncer builds a Syncer. The publisher may be nil when no event bus is
// configured.
func NewSyncer(wiki CategoryLister, index IndexWriter, publisher SyncPublisher) *Syncer {
	return &Syncer{
		wiki:      wiki,
		index:     index,
		publisher: publisher,
		recorder:  metrics.NoopRecorder{},
	}
}

// WithRecorder sets the metrics recorder (default: noop).
func (s *Syncer) WithRecorder(r metrics.Recorder) *Syncer {
	if r != nil {
		s.recorder = r
	}
	return s
}

// SyncCategory refreshes one category and returns the number of index entries
// written for it.
func (s *Syncer) SyncCategory(ctx context.Context, category string) (int, error) {
	start := time.Now()

	infos, err := s.wiki.ListCategoryPages(ctx, category)
	if err != nil {
		s.recorder.IncSyncOutcome(category, false)
		return 0, fmt.Errorf("list pages in %s: %w", category, err)
	}
	if err := s.index.ReplaceCategory(ctx, category, infos); err != nil {
		s.recorder.IncSyncOutcome(category, false)
		return 0, fmt.Errorf("store pages for %s: %w", category, err)
	}

	elapsed := time.Since(start)
	s.recorder.ObserveSyncDuration(category, elapsed)
	s.recorder.IncSyncOutcome(category, true)

	if s.publisher != nil {
		event := contentcache.SyncEvent{
			Category: category,
			Pages:    len(infos),
			Duration: elapsed.String(),
		}
		if err := s.publisher.PublishSync(ctx, event); err != nil {
			slog.Warn("Sync event publish failed",
				logfields.Category(category), logfields.Error(err))
		}
	}
	return len(infos), nil
}

// SyncAll refreshes every category under one job ID. Failed categories are
// skipped so one broken category cannot starve the rest; their errors are
// joined into the return value.
func (s *Syncer) SyncAll(ctx context.Context, categories []string) error {
	jobID := uuid.NewString()
	start := time.Now()
	slog.Info("Starting category sync", logfields.JobID(jobID))

	var errs []error
	total := 0
	for _, category := range categories {
		n, err := s.SyncCategory(ctx, category)
		if err != nil {
			slog.Error("Category sync failed",
				logfields.JobID(jobID), logfields.Category(category), logfields.Error(err))
			errs = append(errs, err)
			continue
		}
		total += n
		slog.Info("Category synced",
			logfields.JobID(jobID), logfields.Category(category), logfields.Pages(n))
	}

	if count, err := s.index.Count(ctx); err == nil {
		s.recorder.SetIndexedPages(count)
	}

	slog.Info("Category sync finished",
		logfields.JobID(jobID),
		logfields.Pages(total),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return errors.Join(errs...)
}
