package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "moviesearch"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Time taken to serve HTTP requests",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"method", "path", "status"},
	)
	CacheOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_cache_operations_total",
			Help:      "Count of search cache lookups by result",
		},
		[]string{"result"}, // hit, miss
	)
	CatalogMovies = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_movies",
			Help:      "Number of movies in the loaded catalog",
		},
	)
	CatalogLoadFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_load_failures_total",
			Help:      "Count of failed catalog load steps",
		},
		[]string{"stage"}, // list, get, read, decode, parse, query
	)
)

var once sync.Once

// Init registers the collectors with the default registry. Safe to call more than once.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			RequestDuration,
			CacheOperations,
			CatalogMovies,
			CatalogLoadFailures,
		)
	})
}
