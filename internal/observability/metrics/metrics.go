package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (o Outcome) String() string {
	return string(o)
}

var (
	once                        sync.Once
	metricsRouter               *chi.Mux
	providerClientLatency       *prometheus.HistogramVec
	resolutionDurationHistogram *prometheus.HistogramVec
	cacheRequestCounter         *prometheus.CounterVec
	txBuildCounter              *prometheus.CounterVec
	yieldEnrichmentCounter      *prometheus.CounterVec
)

// Init initializes the metrics package.
func Init(metricsPort int) {
	once.Do(func() {
		initMetricsRouter(metricsPort)
		registerMetrics()
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	metricsAddr := fmt.Sprintf(":%d", metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	go func() {
		log.Printf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics initializes and registers the Prometheus metrics.
func registerMetrics() {
	defaultHistogramBucketsSeconds := []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

	providerClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "provider_client_latency_seconds",
			Help:    "Histogram of provider client call durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"provider", "method", "status"},
	)

	resolutionDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vault_resolution_duration_seconds",
			Help:    "Histogram of vault resolution durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"mode", "status"},
	)

	cacheRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_request_count",
			Help: "The total number of cache lookups, split by cache and outcome.",
		},
		[]string{"cache", "outcome"},
	)

	txBuildCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tx_build_count",
			Help: "The total number of transaction build attempts.",
		},
		[]string{"action", "variant", "status"},
	)

	yieldEnrichmentCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yield_enrichment_count",
			Help: "The total number of yield window enrichment attempts.",
		},
		[]string{"status"},
	)

	prometheus.MustRegister(
		providerClientLatency,
		resolutionDurationHistogram,
		cacheRequestCounter,
		txBuildCounter,
		yieldEnrichmentCounter,
	)
}

func outcome(failure bool) Outcome {
	if failure {
		return Error
	}
	return Success
}

func RecordProviderClientLatency(d time.Duration, provider, method string, failure bool) {
	if providerClientLatency == nil {
		return
	}
	providerClientLatency.WithLabelValues(provider, method, outcome(failure).String()).Observe(d.Seconds())
}

func RecordResolutionDuration(d time.Duration, mode string, failure bool) {
	if resolutionDurationHistogram == nil {
		return
	}
	resolutionDurationHistogram.WithLabelValues(mode, outcome(failure).String()).Observe(d.Seconds())
}

func RecordCacheRequest(cacheName string, hit bool) {
	if cacheRequestCounter == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheRequestCounter.WithLabelValues(cacheName, result).Inc()
}

func RecordTxBuild(action, variant string, failure bool) {
	if txBuildCounter == nil {
		return
	}
	txBuildCounter.WithLabelValues(action, variant, outcome(failure).String()).Inc()
}

func RecordYieldEnrichment(failure bool) {
	if yieldEnrichmentCounter == nil {
		return
	}
	yieldEnrichmentCounter.WithLabelValues(outcome(failure).String()).Inc()
}
