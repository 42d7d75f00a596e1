// Package metrics defines and registers all custom Prometheus metrics for the
// Soldiers admin gateway. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "soldiers_gateway"

// ── Session metrics ───────────────────────────────────────────────────────────

// SignInsTotal counts sign-in attempts.
// Label:
//   - result: "success", "rejected" or "error"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_ins_total",
		Help:      "Total number of sign-in attempts, by result.",
	},
	[]string{"result"},
)

// GateDenialsTotal counts requests refused by a permission gate.
// Label:
//   - resource: the guarded resource, or "none" for admin-only gates
var GateDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_denials_total",
		Help:      "Total number of requests denied by a permission gate.",
	},
	[]string{"resource"},
)

// ── Cart metrics ──────────────────────────────────────────────────────────────

// CartAdvisoriesTotal counts stock-ceiling advisories raised by cart edits.
// Label:
//   - kind: "ceiling", "out_of_stock" or "exceeds_stock"
var CartAdvisoriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_advisories_total",
		Help:      "Total number of stock advisories raised while editing carts.",
	},
	[]string{"kind"},
)

// SalesSubmittedTotal counts sale submissions.
// Label:
//   - result: "success", "rejected" (local validation) or "error" (backend)
var SalesSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sales_submitted_total",
		Help:      "Total number of sale submissions, by result.",
	},
	[]string{"result"},
)

// OpenCarts tracks carts currently held in memory.
var OpenCarts = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "open_carts",
		Help:      "Current number of open carts.",
	},
)

// ── Receipt metrics ───────────────────────────────────────────────────────────

// ReceiptQueueDepth tracks receipts waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index
var ReceiptQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "receipt_queue_depth",
		Help:      "Current number of receipts pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ReceiptsRecordedTotal counts receipt writes.
// Label:
//   - result: "success", "error" or "dropped"
var ReceiptsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "receipts_recorded_total",
		Help:      "Total number of sale receipts handled by the audit writer.",
	},
	[]string{"result"},
)

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestDuration measures calls to the club backend.
// Labels:
//   - method: HTTP method
//   - status: HTTP status code, or "error" on transport failure
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of requests to the club backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "status"},
)

// ListCacheTotal counts screen list cache lookups.
// Label:
//   - result: "hit" or "miss"
var ListCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "list_cache_total",
		Help:      "Total number of screen list cache lookups, by result.",
	},
	[]string{"result"},
)
