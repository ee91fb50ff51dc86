package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pfas_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pfas_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Sites
	SiteMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pfas_site_mutations_total",
			Help: "Site create/update/delete operations by result",
		},
		[]string{"operation", "result"}, // result: ok, conflict, not_found, invalid, error
	)

	IdAllocationRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pfas_site_id_allocation_retries_total",
			Help: "Inserts retried after an auto-allocated id collided",
		},
	)

	// Geocoding
	GeocodeRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pfas_geocode_requests_total",
			Help: "Upstream geocoding calls by result",
		},
		[]string{"result"}, // success, failure, rejected
	)

	GeocodeBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pfas_geocode_breaker_state",
			Help: "Geocoder circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	GeocodeCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pfas_geocode_cache_hits_total",
			Help: "Geocoding lookups served from cache",
		},
	)

	GeocodeCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pfas_geocode_cache_misses_total",
			Help: "Geocoding lookups not found in cache",
		},
	)
)
