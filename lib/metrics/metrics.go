package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "iga_http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iga_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "iga_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	decisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iga_review_decisions_total",
			Help: "Review decisions recorded, by decision.",
		},
		[]string{"decision"},
	)

	reviewItemsGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "iga_review_items_generated_total",
		Help: "Review items materialized by campaign generation.",
	})

	revocationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iga_revocations_total",
			Help: "Revocation side effects, by outcome.",
		},
		[]string{"outcome"},
	)

	syncRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iga_directory_sync_runs_total",
			Help: "Directory sync runs, by source and result.",
		},
		[]string{"source", "result"},
	)

	upstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iga_upstream_requests_total",
			Help: "Outbound requests to integrations, by service and status.",
		},
		[]string{"service", "status"},
	)

	registerOnce sync.Once
)

// Init registers collectors in the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpInFlight,
			httpRequestsTotal,
			httpRequestDuration,
			decisionsTotal,
			reviewItemsGenerated,
			revocationsTotal,
			syncRunsTotal,
			upstreamRequestsTotal,
		)
	})
}

func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

// Middleware records request count and latency labelled by route pattern.
func Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		httpInFlight.Inc()
		start := time.Now()
		err := ctx.Next()
		httpInFlight.Dec()

		path := ctx.Path()
		if r := ctx.Route(); r != nil && r.Path != "" {
			path = r.Path
		}
		status := strconv.Itoa(ctx.Response().StatusCode())
		method := ctx.Method()
		httpRequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		return err
	}
}

func ObserveDecision(decision string) {
	decisionsTotal.WithLabelValues(decision).Inc()
}

func ObserveReviewItems(count int) {
	reviewItemsGenerated.Add(float64(count))
}

func ObserveRevocation(outcome string) {
	revocationsTotal.WithLabelValues(outcome).Inc()
}

func ObserveSync(source string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	syncRunsTotal.WithLabelValues(source, result).Inc()
}

// ObserveUpstream records one outbound call, status 0 means transport failure.
func ObserveUpstream(service string, status int) {
	upstreamRequestsTotal.WithLabelValues(service, strconv.Itoa(status)).Inc()
}
