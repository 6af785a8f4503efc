package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ironpeak_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ironpeak_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsAdmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ironpeak_bookings_admitted_total",
			Help: "Bookings created, by resulting status",
		},
		[]string{"status"},
	)

	BookingStatusChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ironpeak_booking_status_changes_total",
			Help: "Administrative booking status changes, by new status",
		},
		[]string{"status"},
	)

	VerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ironpeak_membership_verifications_total",
			Help: "Membership verifications, by outcome",
		},
		[]string{"outcome"},
	)

	MembershipExpiriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ironpeak_membership_expiries_total",
			Help: "Members downgraded to INACTIVE when found expired during a check",
		},
	)

	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ironpeak_rate_limited_total",
			Help: "Requests rejected by a rate limiter",
		},
		[]string{"scope"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBookingAdmitted(status string) {
	BookingsAdmittedTotal.WithLabelValues(status).Inc()
}

func RecordBookingStatusChange(status string) {
	BookingStatusChangesTotal.WithLabelValues(status).Inc()
}

// RecordVerification takes "valid", a reason code, or "error".
func RecordVerification(outcome string) {
	VerificationsTotal.WithLabelValues(outcome).Inc()
}

func RecordMembershipExpiry() {
	MembershipExpiriesTotal.Inc()
}

func RecordRateLimited(scope string) {
	RateLimitedTotal.WithLabelValues(scope).Inc()
}
