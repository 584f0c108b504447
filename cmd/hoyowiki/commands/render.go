package commands

import (
	"fmt"
	"io"
	"os"

	"git.home.luguber.info/inful/hoyowiki/internal/linkcheck"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	File  string `arg:"" optional:"" help:"Wiki markup file to transcode (default: stdin)"`
	Check bool   `help:"Report links in the output that leave the configured wiki"`
}

func (r *RenderCmd) Run(_ *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var source []byte
	if r.File != "" {
		source, err = os.ReadFile(r.File)
		if err != nil {
			return fmt.Errorf("read input file: %w", err)
		}
	} else {
		source, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	output := BuildTranscoder(cfg).Transcode(string(source))
	fmt.Println(output)

	if r.Check {
		links := linkcheck.ExtractMarkdownLinks([]byte(output))
		offWiki := linkcheck.FilterOffWiki(links, cfg.Wiki.BaseURL)
		for _, link := range offWiki {
			fmt.Fprintf(os.Stderr, "off-wiki link: %s\n", link.Destination)
		}
		if len(offWiki) > 0 {
			return fmt.Errorf("%d link(s) leave the configured wiki", len(offWiki))
		}
	}
	return nil
}
