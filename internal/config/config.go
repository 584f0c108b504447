// Package config loads the service configuration from YAML, with environment
// variable expansion and a .env convenience loader for local development.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/hoyowiki/internal/contentcache"
	"git.home.luguber.info/inful/hoyowiki/internal/model"
	"git.home.luguber.info/inful/hoyowiki/internal/wikiapi"
	"git.home.luguber.info/inful/hoyowiki/internal/wikiurl"
)

// Config represents the application configuration.
type Config struct {
	Wiki         WikiConfig         `yaml:"wiki"`
	Index        IndexConfig        `yaml:"index"`
	Cache        CacheConfig        `yaml:"cache"`
	Server       ServerConfig       `yaml:"server"`
	Sync         SyncConfig         `yaml:"sync"`
	Replacements ReplacementsConfig `yaml:"replacements,omitempty"`
	Logging      LoggingConfig      `yaml:"logging,omitempty"`
}

// WikiConfig points the service at a MediaWiki instance.
type WikiConfig struct {
	Endpoint  string      `yaml:"endpoint,omitempty"`
	BaseURL   string      `yaml:"base_url,omitempty"`
	UserAgent string      `yaml:"user_agent,omitempty"`
	Retry     RetryConfig `yaml:"retry,omitempty"`
}

// RetryConfig tunes the backoff applied to transient wiki API failures.
// Zero values keep the client defaults.
type RetryConfig struct {
	Mode       string        `yaml:"mode,omitempty"` // fixed|linear|exponential
	Initial    time.Duration `yaml:"initial,omitempty"`
	Max        time.Duration `yaml:"max,omitempty"`
	MaxRetries int           `yaml:"max_retries,omitempty"`
}

// IndexConfig configures the local page index.
type IndexConfig struct {
	Path string `yaml:"path,omitempty"`
}

// CacheConfig configures the rendered-content cache. With a NATS URL the
// cache is a shared JetStream bucket; without one it is in-process memory.
type CacheConfig struct {
	TTL  time.Duration `yaml:"ttl,omitempty"`
	NATS NATSConfig    `yaml:"nats,omitempty"`
}

// NATSConfig carries the optional NATS connection settings.
type NATSConfig struct {
	URL     string `yaml:"url,omitempty"`
	Bucket  string `yaml:"bucket,omitempty"`
	Subject string `yaml:"subject,omitempty"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Listen  string `yaml:"listen,omitempty"`
	Metrics bool   `yaml:"metrics"`
}

// SyncConfig configures the scheduled category syncs.
type SyncConfig struct {
	Interval   time.Duration `yaml:"interval,omitempty"`
	Categories []string      `yaml:"categories,omitempty"`
	OnStart    bool          `yaml:"on_start"`
}

// ReplacementsConfig overrides the stock tag and template replacement tables.
// Omitted tables keep their defaults; an empty-string value deletes matching
// constructs outright.
type ReplacementsConfig struct {
	Tags      map[string]string `yaml:"tags,omitempty"`
	Templates map[string]string `yaml:"templates,omitempty"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug|info|warn|error
	Format string `yaml:"format,omitempty"` // text|json
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load(".env", ".env.local")

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	config := &Config{}
	config.applyDefaults()
	return config
}

func (c *Config) applyDefaults() {
	if c.Wiki.Endpoint == "" {
		c.Wiki.Endpoint = wikiapi.DefaultEndpoint
	}
	if c.Wiki.BaseURL == "" {
		c.Wiki.BaseURL = wikiurl.DefaultBase
	}
	if c.Index.Path == "" {
		c.Index.Path = "hoyowiki.db"
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = contentcache.DefaultTTL
	}
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Sync.Interval <= 0 {
		c.Sync.Interval = 6 * time.Hour
	}
	if len(c.Sync.Categories) == 0 {
		c.Sync.Categories = append([]string(nil), model.RequestCategories...)
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Config{
		Wiki: WikiConfig{
			Endpoint:  wikiapi.DefaultEndpoint,
			BaseURL:   wikiurl.DefaultBase,
			UserAgent: "hoyowiki/1.0 (+https://git.home.luguber.info/inful/hoyowiki)",
		},
		Index: IndexConfig{Path: "hoyowiki.db"},
		Cache: CacheConfig{
			TTL: contentcache.DefaultTTL,
			NATS: NATSConfig{
				URL:     "nats://localhost:4222",
				Bucket:  "hoyowiki-content",
				Subject: "hoyowiki.sync",
			},
		},
		Server: ServerConfig{Listen: ":8080", Metrics: true},
		Sync: SyncConfig{
			Interval:   6 * time.Hour,
			Categories: model.RequestCategories,
			OnStart:    true,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
