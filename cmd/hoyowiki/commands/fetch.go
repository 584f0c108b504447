package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"git.home.luguber.info/inful/hoyowiki/internal/content"
	"git.home.luguber.info/inful/hoyowiki/internal/index"
)

// FetchCmd implements the 'fetch' command.
type FetchCmd struct {
	Page string `arg:"" help:"Page title, alias, or numeric page ID"`
}

func (f *FetchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := index.Open(cfg.Index.Path)
	if err != nil {
		return fmt.Errorf("open page index: %w", err)
	}
	defer store.Close()

	svc := content.New(NewWikiClient(cfg), store, nil, NewRenderer(cfg))

	ctx := context.Background()
	var rendered *content.Rendered
	if pageID, convErr := strconv.ParseInt(f.Page, 10, 64); convErr == nil {
		rendered, err = svc.Page(ctx, pageID)
	} else {
		rendered, err = svc.PageByTitle(ctx, f.Page)
	}
	if err != nil {
		return fmt.Errorf("fetch %q: %w", f.Page, err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rendered)
}
