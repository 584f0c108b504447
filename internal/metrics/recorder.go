package metrics

import "time"

// Recorder defines observability hooks for transcoding, wiki API access,
// content caching and index syncs. Implementations may forward to Prometheus,
// OpenTelemetry, etc. All methods must be safe for nil receivers when using
// the NoopRecorder (allowing optional injection).
type Recorder interface {
	ObserveTranscodeDuration(d time.Duration)
	AddConstructs(kind string, n int)
	ObserveAPIRequestDuration(operation string, d time.Duration, success bool)
	IncCacheResult(hit bool)
	ObserveSyncDuration(category string, d time.Duration)
	IncSyncOutcome(category string, success bool)
	SetIndexedPages(n int64)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveTranscodeDuration(time.Duration)                {}
func (NoopRecorder) AddConstructs(string, int)                             {}
func (NoopRecorder) ObserveAPIRequestDuration(string, time.Duration, bool) {}
func (NoopRecorder) IncCacheResult(bool)                                   {}
func (NoopRecorder) ObserveSyncDuration(string, time.Duration)             {}
func (NoopRecorder) IncSyncOutcome(string, bool)                           {}
func (NoopRecorder) SetIndexedPages(int64)                                 {}
