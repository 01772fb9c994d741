// Package metrics defines the custom Prometheus metrics of the backend. All
// metrics are registered with the default registry on package init through
// promauto and exposed by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "backen_maria"

// ── Booking metrics ───────────────────────────────────────────────────────────

// BookingsTotal counts booking writes handled by the API.
// Labels:
//   - aggregate: "cita" or "pedido"
//   - action: "created", "updated" or "deleted"
//   - result: "ok" or "error"
var BookingsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_total",
		Help:      "Total number of appointment and order writes, by outcome.",
	},
	[]string{"aggregate", "action", "result"},
)

// BookingDuration measures the service call of a booking write, including
// the association sync transaction.
var BookingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "booking_duration_seconds",
		Help:      "Duration of appointment and order writes.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"aggregate", "action"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - guard: the guard the login was attempted against
//   - result: "ok", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by guard and result.",
	},
	[]string{"guard", "result"},
)

// ── Audit pipeline metrics ────────────────────────────────────────────────────

// AuditEventsTotal counts booking events handled by the audit workers.
// Label:
//   - result: "recorded" or "error"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of booking events processed by the audit workers.",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks the events waiting in each dispatcher worker channel.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of booking events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditPublishErrorsTotal counts booking events that could not be published
// after commit.
var AuditPublishErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_publish_errors_total",
		Help:      "Total number of booking events that failed to publish.",
	},
)
