package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// StreamsTotal counts relayed streams by how they ended
	// (complete, error, client_gone, rejected)
	StreamsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inkwell_streams_total",
			Help: "Total number of relay streams by outcome",
		},
		[]string{"outcome"},
	)

	// FragmentsTotal counts content fragments written, split by how they were produced
	FragmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inkwell_stream_fragments_total",
			Help: "Content fragments written to relay streams",
		},
		[]string{"mode"}, // native, simulated
	)

	// GenerationErrors counts classified backend failures
	GenerationErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inkwell_generation_errors_total",
			Help: "Classified generation failures",
		},
		[]string{"backend", "kind"},
	)

	// RequestLatency records handler latency
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inkwell_request_duration_seconds",
			Help:    "Request latency distributions",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// SEOLookups counts keyword lookups by cache result
	SEOLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inkwell_seo_lookups_total",
			Help: "SEO keyword lookups by cache result",
		},
		[]string{"cache"}, // hit, miss
	)

	initOnce sync.Once
)

// Init registers all metrics with the default registry
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(StreamsTotal)
		prometheus.MustRegister(FragmentsTotal)
		prometheus.MustRegister(GenerationErrors)
		prometheus.MustRegister(RequestLatency)
		prometheus.MustRegister(SEOLookups)
	})
}
