package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch adapter metrics
var (
	// FetchTotal counts adapter calls by data source and by where the payload came from.
	FetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_fetch_total",
			Help: "Total number of fetch adapter calls, labelled by cache or api origin",
		},
		[]string{"data_source", "source"},
	)

	// UpstreamErrorsTotal counts failed fetches by error kind.
	UpstreamErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_upstream_errors_total",
			Help: "Total number of failed provider calls",
		},
		[]string{"data_source", "kind"},
	)

	// UpstreamRequestDuration tracks the latency of provider calls on cache misses.
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weather_upstream_request_duration_seconds",
			Help:    "Duration of provider requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"data_source"},
	)

	// CacheErrorsTotal counts cache collaborator failures that were degraded to a miss.
	CacheErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_cache_errors_total",
			Help: "Total number of cache read/write failures",
		},
		[]string{"op"},
	)

	// AppStartTime records when the application started
	AppStartTime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "weather_by_address_start_time_seconds",
			Help: "Unix timestamp of when the application started",
		},
	)
)

func init() {
	AppStartTime.SetToCurrentTime()
}

// RecordFetch records a completed adapter call.
func RecordFetch(dataSource, source string) {
	FetchTotal.WithLabelValues(dataSource, source).Inc()
}

// RecordUpstream records the duration of a provider request and, when kind is
// non-empty, a failure of that kind.
func RecordUpstream(dataSource string, duration time.Duration, kind string) {
	UpstreamRequestDuration.WithLabelValues(dataSource).Observe(duration.Seconds())
	if kind != "" {
		UpstreamErrorsTotal.WithLabelValues(dataSource, kind).Inc()
	}
}

// RecordCacheError records a cache failure for op ("read" or "write").
func RecordCacheError(op string) {
	CacheErrorsTotal.WithLabelValues(op).Inc()
}
