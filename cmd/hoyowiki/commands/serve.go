package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/hoyowiki/internal/config"
	"git.home.luguber.info/inful/hoyowiki/internal/content"
	"git.home.luguber.info/inful/hoyowiki/internal/contentcache"
	"git.home.luguber.info/inful/hoyowiki/internal/daemon"
	"git.home.luguber.info/inful/hoyowiki/internal/index"
	"git.home.luguber.info/inful/hoyowiki/internal/metrics"
	"git.home.luguber.info/inful/hoyowiki/internal/server/httpserver"
	"git.home.luguber.info/inful/hoyowiki/internal/wikiapi"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	NoWatch bool `help:"Disable configuration file watching"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	ConfigureLogging(cfg, root.Verbose)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := index.Open(cfg.Index.Path)
	if err != nil {
		return fmt.Errorf("open page index: %w", err)
	}
	defer store.Close()

	cache, publisher, err := buildCache(cfg)
	if err != nil {
		return err
	}
	defer cache.Close()

	registry := prom.NewRegistry()
	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if cfg.Server.Metrics {
		recorder = metrics.NewPrometheusRecorder(registry)
	}

	renderer := NewRenderer(cfg)
	wiki := NewWikiClient(cfg, wikiapi.WithRecorder(recorder))
	svc := content.New(wiki, store, cache, renderer).WithRecorder(recorder)
	syncer := daemon.NewSyncer(wiki, store, publisher).WithRecorder(recorder)

	d, err := daemon.New(cfg, syncer)
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}

	server := httpserver.New(cfg, httpserver.Options{
		Content:  svc,
		Searcher: store,
		Stats:    store,
		Syncer:   syncer,
		Registry: registry,
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- d.Start(ctx)
	}()
	if err := server.Start(ctx); err != nil {
		return err
	}

	var watcher *daemon.ConfigWatcher
	if !s.NoWatch {
		if _, statErr := os.Stat(root.Config); statErr == nil {
			watcher, err = daemon.NewConfigWatcher(root.Config, d)
			if err != nil {
				return fmt.Errorf("create config watcher: %w", err)
			}
			if err := watcher.Start(ctx); err != nil {
				return fmt.Errorf("start config watcher: %w", err)
			}
		}
	}

	slog.Info("Service started, waiting for shutdown signal...")
	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("daemon error: %w", err)
		}
	case <-ctx.Done():
		slog.Info("Shutdown signal received, stopping...")
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()

	var errs []error
	if watcher != nil {
		errs = append(errs, watcher.Stop(stopCtx))
	}
	errs = append(errs, server.Stop(stopCtx), d.Stop(stopCtx))
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	slog.Info("Service stopped successfully")
	return nil
}

// buildCache selects the configured content cache. With a NATS URL the cache
// is shared and doubles as the sync event publisher.
func buildCache(cfg *config.Config) (contentcache.Cache, daemon.SyncPublisher, error) {
	if cfg.Cache.NATS.URL == "" {
		return contentcache.NewMemory(cfg.Cache.TTL), nil, nil
	}

	nc, err := contentcache.NewNATS(contentcache.NATSConfig{
		URL:     cfg.Cache.NATS.URL,
		Bucket:  cfg.Cache.NATS.Bucket,
		Subject: cfg.Cache.NATS.Subject,
		TTL:     cfg.Cache.TTL,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect NATS cache: %w", err)
	}
	return nc, nc, nil
}
