// Package metrics exposes desk activity as Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/azure/newsroom-desk/internal/models"
	"github.com/azure/newsroom-desk/internal/newsroom"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records board and HTTP activity
type Collector struct {
	filterRuns         prometheus.Counter
	filterLatency      prometheus.Histogram
	visibleEvents      prometheus.Gauge
	factChecks         prometheus.Counter
	factCheckVerdicts  *prometheus.CounterVec
	factCheckDismissed prometheus.Counter
	httpRequests       *prometheus.CounterVec
}

var _ newsroom.Recorder = (*Collector)(nil)

// NewCollector creates a Collector and registers its metrics with reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		filterRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "newsroom_filter_runs_total",
			Help: "Number of times the filtered event list was recomputed",
		}),
		filterLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "newsroom_filter_duration_seconds",
			Help:    "Time spent recomputing the filtered event list",
			Buckets: []float64{.00001, .0001, .001, .01, .1},
		}),
		visibleEvents: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "newsroom_visible_events",
			Help: "Events passing the current filters",
		}),
		factChecks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "newsroom_factcheck_triggered_total",
			Help: "Fact checks started",
		}),
		factCheckVerdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "newsroom_factcheck_completed_total",
			Help: "Fact checks completed by verdict",
		}, []string{"verdict"}),
		factCheckDismissed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "newsroom_factcheck_dismissed_total",
			Help: "Fact check panels dismissed",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "newsroom_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status_code"}),
	}

	reg.MustRegister(
		c.filterRuns,
		c.filterLatency,
		c.visibleEvents,
		c.factChecks,
		c.factCheckVerdicts,
		c.factCheckDismissed,
		c.httpRequests,
	)

	return c
}

func (c *Collector) RecordFilter(visible int, duration time.Duration) {
	c.filterRuns.Inc()
	c.filterLatency.Observe(duration.Seconds())
	c.visibleEvents.Set(float64(visible))
}

func (c *Collector) RecordFactCheckTriggered() {
	c.factChecks.Inc()
}

func (c *Collector) RecordFactCheckCompleted(verdict models.Verdict) {
	c.factCheckVerdicts.WithLabelValues(string(verdict)).Inc()
}

func (c *Collector) RecordFactCheckDismissed() {
	c.factCheckDismissed.Inc()
}

// RecordHTTPRequest counts one served request
func (c *Collector) RecordHTTPRequest(method, route string, statusCode int) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
}

// Handler returns the Prometheus scrape handler
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
