package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once              sync.Once
	transcodeDuration prom.Histogram
	constructs        *prom.CounterVec
	apiDuration       *prom.HistogramVec
	cacheResults      *prom.CounterVec
	syncDuration      *prom.HistogramVec
	syncOutcomes      *prom.CounterVec
	indexedPages      prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.transcodeDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "hoyowiki",
			Name:      "transcode_duration_seconds",
			Help:      "Duration of individual markup transcode calls",
			Buckets:   prom.ExponentialBuckets(1e-6, 4, 10),
		})
		pr.constructs = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "hoyowiki",
			Name:      "constructs_total",
			Help:      "Recognized markup constructs by kind",
		}, []string{"kind"})
		pr.apiDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "hoyowiki",
			Name:      "wiki_api_request_duration_seconds",
			Help:      "Duration of wiki API operations",
			Buckets:   prom.DefBuckets,
		}, []string{"operation", "result"})
		pr.cacheResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "hoyowiki",
			Name:      "content_cache_results_total",
			Help:      "Content cache lookups by hit/miss",
		}, []string{"result"})
		pr.syncDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "hoyowiki",
			Name:      "sync_duration_seconds",
			Help:      "Duration of category index syncs",
			Buckets:   prom.DefBuckets,
		}, []string{"category"})
		pr.syncOutcomes = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "hoyowiki",
			Name:      "sync_outcomes_total",
			Help:      "Category sync results by success/failure",
		}, []string{"category", "result"})
		pr.indexedPages = prom.NewGauge(prom.GaugeOpts{
			Namespace: "hoyowiki",
			Name:      "indexed_pages",
			Help:      "Number of page entries currently in the index",
		})
		reg.MustRegister(pr.transcodeDuration, pr.constructs, pr.apiDuration, pr.cacheResults, pr.syncDuration, pr.syncOutcomes, pr.indexedPages)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveTranscodeDuration(d time.Duration) {
	if p == nil || p.transcodeDuration == nil {
		return
	}
	p.transcodeDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) AddConstructs(kind string, n int) {
	if p == nil || p.constructs == nil || n == 0 {
		return
	}
	p.constructs.WithLabelValues(kind).Add(float64(n))
}

func (p *PrometheusRecorder) ObserveAPIRequestDuration(operation string, d time.Duration, success bool) {
	if p == nil || p.apiDuration == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.apiDuration.WithLabelValues(operation, res).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncCacheResult(hit bool) {
	if p == nil || p.cacheResults == nil {
		return
	}
	res := "miss"
	if hit {
		res = "hit"
	}
	p.cacheResults.WithLabelValues(res).Inc()
}

func (p *PrometheusRecorder) ObserveSyncDuration(category string, d time.Duration) {
	if p == nil || p.syncDuration == nil {
		return
	}
	p.syncDuration.WithLabelValues(category).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncSyncOutcome(category string, success bool) {
	if p == nil || p.syncOutcomes == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.syncOutcomes.WithLabelValues(category, res).Inc()
}

func (p *PrometheusRecorder) SetIndexedPages(n int64) {
	if p == nil || p.indexedPages == nil {
		return
	}
	p.indexedPages.Set(float64(n))
}
