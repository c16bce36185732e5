// Package metrics defines and registers the custom Prometheus metrics of the
// account service. It is the single source of truth for metric names, labels,
// and help strings. All metrics are decorative: no behavior depends on them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "accounts"

// SavesTotal counts successful account saves.
// Label:
//   - kind: "created" or "updated"
var SavesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "saves_total",
		Help:      "Total number of accounts successfully saved, by kind.",
	},
	[]string{"kind"},
)

// DeletesTotal counts account deletions, including idempotent deletes of
// already-absent ids.
var DeletesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deletes_total",
		Help:      "Total number of account delete operations completed.",
	},
)

// PasswordChangesTotal counts successful password changes.
var PasswordChangesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_changes_total",
		Help:      "Total number of successful password changes.",
	},
)

// OperationErrorsTotal counts failed operations.
// Labels:
//   - operation: "save", "find", "delete", or "change_password"
//   - reason: business error code, e.g. "VALIDATION_FAILED"
var OperationErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operation_errors_total",
		Help:      "Total number of failed account operations, by operation and reason.",
	},
	[]string{"operation", "reason"},
)
