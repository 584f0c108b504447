package contentcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// SyncEvent is published after a category sync completes, for downstream
// consumers (bots, dashboards) that want to know the index moved.
type SyncEvent struct {
	Category  string    `json:"category"`
	Pages     int       `json:"pages"`
	Duration  string    `json:"duration"`
	Timestamp time.Time `json:"timestamp"`
}

// NATSConfig carries the connection settings for the NATS-backed cache.
type NATSConfig struct {
	URL      string
	Bucket   string
	Subject  string
	TTL      time.Duration
}

// NATS is a Cache backed by a JetStream key-value bucket, shared between
// service instances. It also publishes sync events when a Subject is
// configured.
type NATS struct {
	conn    *nats.Conn
	js      jetstream.JetStream
	kv      jetstream.KeyValue
	subject string
}

// NewNATS connects to NATS and creates (or reuses) the content bucket.
func NewNATS(cfg NATSConfig) (*NATS, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("nats cache bucket is required")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	conn, err := nats.Connect(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	client := &NATS{conn: conn, js: js, subject: cfg.Subject}
	if err := client.initBucket(cfg.Bucket, ttl); err != nil {
		conn.Close()
		return nil, err
	}

	slog.Info("NATS content cache initialized",
		"url", cfg.URL, "bucket", cfg.Bucket, "subject", cfg.Subject)
	return client, nil
}

func (n *NATS) initBucket(bucket string, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	kv, err := n.js.KeyValue(ctx, bucket)
	if err == nil {
		n.kv = kv
		return nil
	}

	kv, err = n.js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "Rendered wiki content cache for hoyowiki",
		History:     1,
		TTL:         ttl,
	})
	if err != nil {
		return fmt.Errorf("create KV bucket: %w", err)
	}
	n.kv = kv
	return nil
}

// Get implements Cache. The bucket TTL handles expiry; re-putting the value
// on a hit refreshes it.
func (n *NATS) Get(ctx context.Context, key string) ([]byte, bool, error) {
	entry, err := n.kv.Get(ctx, key)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cache key %q: %w", key, err)
	}

	value := entry.Value()
	if _, err := n.kv.Put(ctx, key, value); err != nil {
		slog.Debug("Cache TTL refresh failed", "key", key, "error", err)
	}
	return value, true, nil
}

// Set implements Cache.
func (n *NATS) Set(ctx context.Context, key string, value []byte) error {
	if _, err := n.kv.Put(ctx, key, value); err != nil {
		return fmt.Errorf("put cache key %q: %w", key, err)
	}
	return nil
}

// PublishSync publishes a sync-completed event. A missing subject makes this
// a no-op so callers need not special-case the configuration.
func (n *NATS) PublishSync(ctx context.Context, event SyncEvent) error {
	if n.subject == "" {
		return nil
	}

	event.Timestamp = time.Now()
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal sync event: %w", err)
	}
	if _, err := n.js.Publish(ctx, n.subject, data); err != nil {
		return fmt.Errorf("publish sync event: %w", err)
	}

	slog.Debug("Published sync event", "category", event.Category, "pages", event.Pages)
	return nil
}

// Close implements Cache.
func (n *NATS) Close() error {
	n.conn.Close()
	return nil
}
