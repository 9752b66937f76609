package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "jobboard"

var (
	registerOnce sync.Once

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	requestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	requestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "HTTP requests currently being served.",
		},
	)

	applicationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "applications_total",
			Help:      "Application attempts by outcome.",
		},
		[]string{"outcome"},
	)

	listingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "listing",
			Name:      "query_duration_seconds",
			Help:      "Job listing latency by sort mode.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"sort"},
	)

	reaperRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reaper",
			Name:      "runs_total",
			Help:      "Expiry reaper runs by result.",
		},
		[]string{"result"},
	)

	reaperDeactivated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reaper",
			Name:      "jobs_deactivated_total",
			Help:      "Jobs deactivated after passing their expiry.",
		},
	)
)

// Register adds every collector to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			requestDuration, requestTotal, requestsInFlight,
			applicationsTotal, listingDuration,
			reaperRuns, reaperDeactivated,
		)
	})
}

// GinMiddleware records latency and status for every route.
func GinMiddleware() gin.HandlerFunc {
	Register()

	return func(c *gin.Context) {
		start := time.Now()
		requestsInFlight.Inc()
		defer requestsInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		labels := prometheus.Labels{
			"method": c.Request.Method,
			"path":   path,
			"status": strconv.Itoa(c.Writer.Status()),
		}

		requestDuration.With(labels).Observe(time.Since(start).Seconds())
		requestTotal.With(labels).Inc()
	}
}

// ObserveApplication counts one apply attempt. Outcome is "accepted" or an error kind.
func ObserveApplication(outcome string) {
	applicationsTotal.WithLabelValues(outcome).Inc()
}

func ObserveListing(sort string, elapsed time.Duration) {
	listingDuration.WithLabelValues(sort).Observe(elapsed.Seconds())
}

// ObserveReap records one reaper pass.
func ObserveReap(deactivated int64, err error) {
	if err != nil {
		reaperRuns.WithLabelValues("error").Inc()
		return
	}
	reaperRuns.WithLabelValues("ok").Inc()
	reaperDeactivated.Add(float64(deactivated))
}
