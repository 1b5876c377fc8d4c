package monitoring

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	OTPIssued = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "otp_issued_total",
			Help: "Total number of one-time codes issued",
		},
	)
	OTPVerifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otp_verifications_total",
			Help: "OTP verification attempts by result",
		},
		[]string{"result"},
	)
	VisitorEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "visitor_events_total",
			Help: "Visitor gate events by type",
		},
		[]string{"type"},
	)
)

// InitMetrics registers all collectors with the default registry. Calling it
// more than once is harmless.
func InitMetrics() {
	collectors := map[string]prometheus.Collector{
		"HTTPRequests":     HTTPRequests,
		"HTTPDuration":     HTTPDuration,
		"OTPIssued":        OTPIssued,
		"OTPVerifications": OTPVerifications,
		"VisitorEvents":    VisitorEvents,
	}
	for name, c := range collectors {
		if err := prometheus.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			log.Error().Err(err).Msgf("Failed to register %s metric", name)
		}
	}
}
