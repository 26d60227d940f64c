// Package metrics defines and registers all custom Prometheus metrics for the
// chainboard job-board API. It is the single source of truth for metric names,
// labels, and help strings. Registration happens at import time via promauto
// against the default registry, which the /metrics endpoint serves.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jobboard"

// ── Payment metrics ───────────────────────────────────────────────────────────

// PaymentsConfirmedTotal counts payment claims that verified and flipped a
// job to live.
var PaymentsConfirmedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_confirmed_total",
		Help:      "Total number of payment claims that confirmed a job.",
	},
)

// PaymentsRejectedTotal counts rejected payment claims.
// Label:
//   - reason: "tx_not_confirmed", "wrong_recipient", "wrong_amount",
//     "job_not_found", "double_payment", or "other"
var PaymentsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_rejected_total",
		Help:      "Total number of payment claims rejected, by reason.",
	},
	[]string{"reason"},
)

// LedgerLookupDuration measures the round trip to the chain node.
// Label:
//   - result: "ok", "not_found", or "error"
var LedgerLookupDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ledger_lookup_duration_seconds",
		Help:      "Duration of transaction lookups against the chain node.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// ── Job metrics ───────────────────────────────────────────────────────────────

// JobsCreatedTotal counts newly submitted (not yet paid) postings.
var JobsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_created_total",
		Help:      "Total number of job postings submitted.",
	},
)

// ── Generative metrics ────────────────────────────────────────────────────────

// GenerativeCallsTotal counts calls to the text-completion endpoint.
// Labels:
//   - operation: "match_score", "smart_suggestions", "extract_skills"
//   - result: "ok", "unparseable", or "error"
var GenerativeCallsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "generative_calls_total",
		Help:      "Total number of text-completion calls, by operation and result.",
	},
	[]string{"operation", "result"},
)
