// Package metrics defines and registers all custom Prometheus metrics for the
// back-office API. It is the single source of truth for metric names, labels,
// and help strings.
//
// The promauto constructors register everything with the default registry at
// package init, so importing this package from the wiring code is enough.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "backoffice"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid_credentials", or "disabled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// ── Mutation metrics ──────────────────────────────────────────────────────────

// MutationsTotal counts create/update/delete operations on managed entities.
// Labels:
//   - model: the entity kind (e.g. "User", "Product", "Category")
//   - action: "create", "update", or "delete"
var MutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Total number of entity mutations, by model and action.",
	},
	[]string{"model", "action"},
)

// ── Dashboard metrics ─────────────────────────────────────────────────────────

// DashboardDuration measures how long a full dashboard snapshot takes to
// assemble from the underlying aggregation queries.
var DashboardDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "dashboard_snapshot_duration_seconds",
		Help:      "Duration of dashboard snapshot aggregation.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Bulk ingest metrics ───────────────────────────────────────────────────────

// IngestRowsTotal counts bulk-upload rows that finished processing.
// Label:
//   - result: "ok" or "error"
var IngestRowsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ingest_rows_total",
		Help:      "Total number of bulk-upload rows processed, labelled by result.",
	},
	[]string{"result"},
)

// IngestQueueDepth tracks the current number of rows waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var IngestQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ingest_queue_depth",
		Help:      "Current number of rows pending in each ingest worker channel.",
	},
	[]string{"worker_id"},
)
