package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/hoyowiki/internal/config"
	"git.home.luguber.info/inful/hoyowiki/internal/logfields"
)

// Daemon runs the periodic category syncs.
type Daemon struct {
	mu        sync.RWMutex
	cfg       *config.Config
	syncer    *Syncer
	scheduler gocron.Scheduler
}

// New creates a daemon around a configured syncer.
func New(cfg *config.Config, syncer *Syncer) (*Daemon, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return &Daemon{cfg: cfg, syncer: syncer, scheduler: scheduler}, nil
}

// Start schedules the periodic sync and begins the scheduler. With
// sync.on_start set, one full sync runs immediately before the first tick.
func (d *Daemon) Start(ctx context.Context) error {
	d.mu.RLock()
	cfg := d.cfg
	d.mu.RUnlock()

	if cfg.Sync.OnStart {
		if err := d.syncer.SyncAll(ctx, cfg.Sync.Categories); err != nil {
			// The scheduled runs will retry; an unreachable wiki at boot is
			// not fatal.
			slog.Warn("Initial sync incomplete", logfields.Error(err))
		}
	}

	job, err := d.scheduler.NewJob(
		gocron.DurationJob(cfg.Sync.Interval),
		gocron.NewTask(d.runScheduledSync, ctx),
		gocron.WithName("category-sync"),
	)
	if err != nil {
		return fmt.Errorf("schedule category sync: %w", err)
	}

	slog.Info("Starting scheduler",
		logfields.JobID(job.ID().String()),
		slog.Duration("interval", cfg.Sync.Interval))
	d.scheduler.Start()
	return nil
}

// Stop gracefully shuts down the scheduler.
func (d *Daemon) Stop(ctx context.Context) error {
	slog.Info("Stopping scheduler")
	return d.scheduler.Shutdown()
}

func (d *Daemon) runScheduledSync(ctx context.Context) {
	d.mu.RLock()
	categories := d.cfg.Sync.Categories
	d.mu.RUnlock()

	if err := d.syncer.SyncAll(ctx, categories); err != nil {
		slog.Error("Scheduled sync failed", logfields.Error(err))
	}
}

// Config returns the current configuration.
func (d *Daemon) Config() *config.Config {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cfg
}

// ReloadConfig applies an edited configuration. Category and interval changes
// take effect on the next tick; address changes need a restart.
func (d *Daemon) ReloadConfig(ctx context.Context, newCfg *config.Config) error {
	d.mu.Lock()
	old := d.cfg
	d.cfg = newCfg
	d.mu.Unlock()

	if newCfg.Server.Listen != old.Server.Listen {
		slog.Warn("Listen address change requires restart to take effect",
			slog.String("current", old.Server.Listen),
			slog.String("configured", newCfg.Server.Listen))
	}
	if newCfg.Sync.Interval != old.Sync.Interval {
		if err := d.reschedule(ctx, newCfg); err != nil {
			return err
		}
	}
	return nil
}

func (d *Daemon) reschedule(ctx context.Context, cfg *config.Config) error {
	for _, job := range d.scheduler.Jobs() {
		if job.Name() == "category-sync" {
			if err := d.scheduler.RemoveJob(job.ID()); err != nil {
				return fmt.Errorf("remove stale sync job: %w", err)
			}
		}
	}
	_, err := d.scheduler.NewJob(
		gocron.DurationJob(cfg.Sync.Interval),
		gocron.NewTask(d.runScheduledSync, ctx),
		gocron.WithName("category-sync"),
	)
	if err != nil {
		return fmt.Errorf("reschedule category sync: %w", err)
	}
	slog.Info("Sync rescheduled", slog.Duration("interval", cfg.Sync.Interval))
	return nil
}
