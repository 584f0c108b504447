package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/hoyowiki/internal/daemon"
	"git.home.luguber.info/inful/hoyowiki/internal/index"
)

// SyncCmd implements the 'sync' command.
type SyncCmd struct {
	Categories []string `short:"C" help:"Categories to sync (default: configured categories)"`
}

func (s *SyncCmd) Run(_ *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := index.Open(cfg.Index.Path)
	if err != nil {
		return fmt.Errorf("open page index: %w", err)
	}
	defer store.Close()

	categories := s.Categories
	if len(categories) == 0 {
		categories = cfg.Sync.Categories
	}

	syncer := daemon.NewSyncer(NewWikiClient(cfg), store, nil)
	return syncer.SyncAll(context.Background(), categories)
}
