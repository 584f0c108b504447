// Package commands defines the CLI surface: render, fetch, sync, serve and
// init subcommands sharing one configuration file.
package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/hoyowiki/internal/config"
	"git.home.luguber.info/inful/hoyowiki/internal/display"
	"git.home.luguber.info/inful/hoyowiki/internal/retry"
	"git.home.luguber.info/inful/hoyowiki/internal/wikiapi"
	"git.home.luguber.info/inful/hoyowiki/internal/wikitext"
	"git.home.luguber.info/inful/hoyowiki/internal/wikiurl"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"hoyowiki.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Render RenderCmd `cmd:"" help:"Transcode wiki markup from a file or stdin to chat Markdown"`
	Fetch  FetchCmd  `cmd:"" help:"Fetch a wiki page and print its rendered messages"`
	Sync   SyncCmd   `cmd:"" help:"Harvest the configured categories into the local page index"`
	Serve  ServeCmd  `cmd:"" help:"Run the content service (scheduled syncs plus HTTP API)"`
	Init   InitCmd   `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// LoadConfig loads the configuration file named by the root flags. A missing
// file is only an error when the user pointed at one explicitly; the default
// path quietly falls back to built-in defaults so local commands work without
// any setup.
func LoadConfig(root *CLI) (*config.Config, error) {
	if _, err := os.Stat(root.Config); os.IsNotExist(err) && !rootConfigExplicit(root) {
		slog.Debug("No configuration file found, using defaults", "path", root.Config)
		return config.Default(), nil
	}
	return config.Load(root.Config)
}

func rootConfigExplicit(root *CLI) bool {
	return root.Config != "hoyowiki.yaml"
}

// ConfigureLogging re-applies the log settings from the loaded configuration.
// The --verbose flag keeps priority over the configured level.
func ConfigureLogging(cfg *config.Config, verbose bool) {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// BuildTranscoder builds the markup transcoder from the configured
// replacement tables, layered over the stock defaults.
func BuildTranscoder(cfg *config.Config) *wikitext.Transcoder {
	tags := wikitext.DefaultTagTable()
	for k, v := range cfg.Replacements.Tags {
		tags[k] = v
	}
	templates := wikitext.DefaultTemplateTable()
	for k, v := range cfg.Replacements.Templates {
		templates[k] = v
	}
	return wikitext.NewTranscoder(tags, templates, wikiurl.New(cfg.Wiki.BaseURL))
}

// NewRenderer builds the display renderer so both the transcoded text and the
// message URLs resolve against the configured wiki base.
func NewRenderer(cfg *config.Config) *display.Renderer {
	return display.NewRenderer(BuildTranscoder(cfg), wikiurl.New(cfg.Wiki.BaseURL))
}

// NewWikiClient builds the wiki API client from configuration.
func NewWikiClient(cfg *config.Config, extra ...wikiapi.Option) *wikiapi.Client {
	var opts []wikiapi.Option
	if cfg.Wiki.UserAgent != "" {
		opts = append(opts, wikiapi.WithUserAgent(cfg.Wiki.UserAgent))
	}
	if r := cfg.Wiki.Retry; r != (config.RetryConfig{}) {
		// Zero max_retries keeps the default retry count.
		maxRetries := r.MaxRetries
		if maxRetries == 0 {
			maxRetries = -1
		}
		policy := retry.NewPolicy(retry.BackoffMode(r.Mode), r.Initial, r.Max, maxRetries)
		opts = append(opts, wikiapi.WithRetryPolicy(policy))
	}
	opts = append(opts, extra...)
	return wikiapi.New(cfg.Wiki.Endpoint, opts...)
}
