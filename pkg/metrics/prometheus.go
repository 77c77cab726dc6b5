// Package metrics provides Prometheus metrics for the faceoff ranking
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Engine metrics.
	comparisonsRecorded prometheus.Counter
	drawsRecorded       prometheus.Counter
	pairsSelected       prometheus.Counter
	insufficientPools   prometheus.Counter
	selectionLatency    prometheus.Histogram
	recordLatency       prometheus.Histogram
	ratingDelta         prometheus.Histogram

	// Housekeeping metrics.
	historyPruned         prometheus.Counter
	pruneFailures         prometheus.Counter
	decaySweeps           prometheus.Counter
	decayedItems          prometheus.Counter
	itemsTracked          prometheus.Gauge
	totalComparisons      prometheus.Gauge
	systemResets          prometheus.Counter
	systemInitializations prometheus.Counter

	// HTTP metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global manager backed by a custom registry so default Go collectors stay
// out of the scrape.
var (
	globalManager  *Manager                  //nolint:gochecknoglobals // singleton metrics manager
	customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry
)

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers all collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "faceoff",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.comparisonsRecorded = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "comparisons_recorded_total",
		Help: "Total resolved comparisons applied to the store.",
	})
	m.drawsRecorded = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "draws_recorded_total",
		Help: "Total comparisons resolved as draws.",
	})
	m.pairsSelected = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "pairs_selected_total",
		Help: "Total pairs produced by the selector.",
	})
	m.insufficientPools = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "insufficient_pools_total",
		Help: "Selections that failed because fewer than two items were eligible.",
	})
	m.selectionLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "selection_latency_ms",
		Help:    "Pair selection latency in milliseconds.",
		Buckets: m.histogramBuckets,
	})
	m.recordLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "record_latency_ms",
		Help:    "Comparison recording latency in milliseconds.",
		Buckets: m.histogramBuckets,
	})
	m.ratingDelta = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "rating_delta",
		Help:    "Absolute rating change applied to the winner per comparison.",
		Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128},
	})

	m.historyPruned = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "history_pruned_total",
		Help: "History records removed by window pruning.",
	})
	m.pruneFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "history_prune_failures_total",
		Help: "Best-effort prune attempts that failed and were swallowed.",
	})
	m.decaySweeps = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "decay_sweeps_total",
		Help: "Completed deviation decay sweeps.",
	})
	m.decayedItems = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "decayed_items_total",
		Help: "Items whose rating deviation was grown by a decay sweep.",
	})
	m.itemsTracked = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "items_tracked",
		Help: "Collection items currently tracked across all scopes.",
	})
	m.totalComparisons = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "total_comparisons",
		Help: "Scope comparison counter as last persisted.",
	})
	m.systemResets = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "system_resets_total",
		Help: "Explicit system resets performed.",
	})
	m.systemInitializations = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "system_initializations_total",
		Help: "Scopes initialized for the first time.",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "http",
		Name: "requests_total",
		Help: "HTTP requests by endpoint, method, and status.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: "http",
		Name:    "request_duration_ms",
		Help:    "HTTP request duration in milliseconds.",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})
}

// Package-level helpers against the global manager.

// RecordComparison counts one applied comparison and its winner delta.
func RecordComparison(draw bool, winnerDelta float64) {
	globalManager.comparisonsRecorded.Inc()
	if draw {
		globalManager.drawsRecorded.Inc()
	}
	if winnerDelta < 0 {
		winnerDelta = -winnerDelta
	}
	globalManager.ratingDelta.Observe(winnerDelta)
}

// RecordPairSelected counts one successful selection.
func RecordPairSelected() {
	globalManager.pairsSelected.Inc()
}

// RecordInsufficientPool counts a selection that found too few items.
func RecordInsufficientPool() {
	globalManager.insufficientPools.Inc()
}

// RecordSelectionLatency observes pair selection latency in milliseconds.
func RecordSelectionLatency(latencyMs float64) {
	globalManager.selectionLatency.Observe(latencyMs)
}

// RecordRecordLatency observes comparison recording latency in milliseconds.
func RecordRecordLatency(latencyMs float64) {
	globalManager.recordLatency.Observe(latencyMs)
}

// RecordHistoryPruned counts records removed by window pruning.
func RecordHistoryPruned(n int) {
	globalManager.historyPruned.Add(float64(n))
}

// RecordPruneFailure counts a swallowed prune failure.
func RecordPruneFailure() {
	globalManager.pruneFailures.Inc()
}

// RecordDecaySweep counts one completed decay sweep and the items it touched.
func RecordDecaySweep(itemsDecayed int) {
	globalManager.decaySweeps.Inc()
	globalManager.decayedItems.Add(float64(itemsDecayed))
}

// UpdateItemsTracked sets the tracked-items gauge.
func UpdateItemsTracked(count int) {
	globalManager.itemsTracked.Set(float64(count))
}

// UpdateTotalComparisons sets the persisted comparison counter gauge.
func UpdateTotalComparisons(count int) {
	globalManager.totalComparisons.Set(float64(count))
}

// RecordSystemReset counts one explicit reset.
func RecordSystemReset() {
	globalManager.systemResets.Inc()
}

// RecordSystemInitialized counts one first-time initialization.
func RecordSystemInitialized() {
	globalManager.systemInitializations.Inc()
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration observes one HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
}

// GetRegistry exposes the custom registry for the scrape handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
