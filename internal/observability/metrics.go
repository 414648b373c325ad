package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce        sync.Once
	escalationsTotal    *prometheus.CounterVec
	statusUpdatesTotal  *prometheus.CounterVec
	faqMatchSeconds     prometheus.Histogram
	activityLogFailures prometheus.Counter
	adminRequestsTotal  *prometheus.CounterVec
	adminLatencySeconds *prometheus.HistogramVec
)

// RegisterMetrics initialises the Prometheus collectors used by the service.
func RegisterMetrics() {
	registerOnce.Do(func() {
		escalationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "support_escalations_total",
			Help: "Escalation attempts partitioned by outcome.",
		}, []string{"outcome"})

		statusUpdatesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "support_status_updates_total",
			Help: "Request status transitions partitioned by new status.",
		}, []string{"status"})

		faqMatchSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "support_faq_match_seconds",
			Help:    "Latency distribution for FAQ keyword matching.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		})

		activityLogFailures = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "support_activity_log_failures_total",
			Help: "Activity log writes that failed and were swallowed.",
		})

		adminRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "support_admin_requests_total",
			Help: "Total number of admin API requests served.",
		}, []string{"method", "route", "status"})

		adminLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "support_admin_latency_seconds",
			Help:    "Latency distribution for admin API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		prometheus.MustRegister(
			escalationsTotal,
			statusUpdatesTotal,
			faqMatchSeconds,
			activityLogFailures,
			adminRequestsTotal,
			adminLatencySeconds,
		)
	})
}

// Escalations exposes the escalation attempt counter.
func Escalations() *prometheus.CounterVec {
	RegisterMetrics()
	return escalationsTotal
}

// StatusUpdates exposes the status transition counter.
func StatusUpdates() *prometheus.CounterVec {
	RegisterMetrics()
	return statusUpdatesTotal
}

// FAQMatchLatency exposes the FAQ matching latency histogram.
func FAQMatchLatency() prometheus.Histogram {
	RegisterMetrics()
	return faqMatchSeconds
}

// ActivityLogFailures exposes the swallowed audit write failure counter.
func ActivityLogFailures() prometheus.Counter {
	RegisterMetrics()
	return activityLogFailures
}

// AdminRequests exposes the counter for admin requests.
func AdminRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return adminRequestsTotal
}

// AdminLatency exposes the latency histogram for admin requests.
func AdminLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return adminLatencySeconds
}
