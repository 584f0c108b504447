package metrics

import "time"

type testRecorder struct {
	transcodes   int
	constructs   map[string]int
	apiRequests  map[string]int
	cacheHits    int
	cacheMisses  int
	syncs        map[string]int
	indexedPages int64
}

func newTestRecorder() *testRecorder {
	return &testRecorder{constructs: map[string]int{}, apiRequests: map[string]int{}, syncs: map[string]int{}}
}

func (t *testRecorder) ObserveTranscodeDuration(_ time.Duration) { t.transcodes++ }
func (t *testRecorder) AddConstructs(kind string, n int)         { t.constructs[kind] += n }
func (t *testRecorder) ObserveAPIRequestDuration(operation string, _ time.Duration, _ bool) {
	t.apiRequests[operation]++
}
func (t *testRecorder) IncCacheResult(hit bool) {
	if hit {
		t.cacheHits++
	} else {
		t.cacheMisses++
	}
}
func (t *testRecorder) ObserveSyncDuration(category string, _ time.Duration) { t.syncs[category]++ }
func (t *testRecorder) IncSyncOutcome(string, bool)                          {}
func (t *testRecorder) SetIndexedPages(n int64)                              { t.indexedPages = n }
