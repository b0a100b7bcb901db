// Package metrics defines the custom Prometheus metrics of the timesheet API.
// Metrics are registered with the default registry on package init through
// promauto and exposed by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "timesheet"

// ── Shift metrics ─────────────────────────────────────────────────────────────

// ShiftsOpenedTotal counts successful clock-ins.
// Label:
//   - shift_type: STANDARD, SUNDAY, EMERGENCY or OVERNIGHT
var ShiftsOpenedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shifts_opened_total",
		Help:      "Total number of shifts opened, by shift type.",
	},
	[]string{"shift_type"},
)

// ShiftsClosedTotal counts closed entries, live clock-outs and retroactive
// entries alike.
// Labels:
//   - shift_type: the entry's shift type
//   - mode: "live" or "retroactive"
var ShiftsClosedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shifts_closed_total",
		Help:      "Total number of shifts closed, by shift type and mode.",
	},
	[]string{"shift_type", "mode"},
)

// BillableHoursTotal accumulates rounded hours of closed shifts.
var BillableHoursTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "billable_hours_total",
		Help:      "Sum of rounded hours recorded on closed shifts.",
	},
	[]string{"shift_type"},
)

// ShiftConflictsTotal counts clock-ins rejected because an open entry exists.
var ShiftConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shift_conflicts_total",
		Help:      "Total number of clock-in attempts rejected by the single open shift rule.",
	},
)

// ── Report metrics ────────────────────────────────────────────────────────────

// ReportsGeneratedTotal counts CSV exports.
// Label:
//   - kind: "global", "concert" or "translator"
var ReportsGeneratedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_generated_total",
		Help:      "Total number of CSV reports generated, by kind.",
	},
	[]string{"kind"},
)

// ReportRows observes the number of data rows per export.
var ReportRows = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "report_rows",
		Help:      "Number of data rows per generated report.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
	},
	[]string{"kind"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditEventsProcessedTotal counts shift events written to the audit store.
// Label:
//   - action: opened, closed, retroactive, edited or deleted
var AuditEventsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_processed_total",
		Help:      "Total number of shift events persisted to the audit trail.",
	},
	[]string{"action"},
)

// AuditEventsErrorsTotal counts events that failed or were dropped.
// Label:
//   - reason: "persist_failed", "queue_full" or "stopped"
var AuditEventsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_errors_total",
		Help:      "Total number of shift events that could not be recorded.",
	},
	[]string{"reason"},
)

// AuditQueueDepth tracks pending events per dispatcher worker.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of shift events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditProcessingDuration measures dequeue-to-persist latency.
var AuditProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_processing_duration_seconds",
		Help:      "Duration of shift event processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"action"},
)
