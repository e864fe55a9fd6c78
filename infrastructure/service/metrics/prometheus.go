package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vendorops/insights/application/port/outbound"
)

// Recorder implements outbound.InsightMetrics using Prometheus.
type Recorder struct {
	registry        *prometheus.Registry
	evaluations     *prometheus.CounterVec
	listingDuration *prometheus.HistogramVec
	commits         *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

var _ outbound.InsightMetrics = (*Recorder)(nil)

// New registers the collectors on a private registry so tests and multiple
// servers in one process do not collide.
func New() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		evaluations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "insights_evaluations_total",
				Help: "Entity evaluations by domain and outcome",
			},
			[]string{"domain", "outcome"},
		),
		listingDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "insights_listing_duration_seconds",
				Help:    "Duration of full insight listings in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"domain"},
		),
		commits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "insights_commits_total",
				Help: "Apply and purchase order commits by outcome",
			},
			[]string{"operation", "outcome"},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "insights_http_requests_total",
				Help: "HTTP requests by route and status",
			},
			[]string{"route", "method", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "insights_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
	}
}

func (r *Recorder) ObserveEvaluation(domain, outcome string) {
	r.evaluations.WithLabelValues(domain, outcome).Inc()
}

func (r *Recorder) ObserveListing(domain string, duration time.Duration) {
	r.listingDuration.WithLabelValues(domain).Observe(duration.Seconds())
}

func (r *Recorder) ObserveCommit(operation, outcome string) {
	r.commits.WithLabelValues(operation, outcome).Inc()
}

// ObserveHTTP records one served request.
func (r *Recorder) ObserveHTTP(route, method string, status int, duration time.Duration) {
	r.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
