// Package metrics declares the Prometheus collectors of the sync agent and
// the development gateway.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CommitsMatchedTotal counts remote events that confirmed a pending op.
	CommitsMatchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worldsync_commits_matched_total",
			Help: "Remote row events matched to a pending local operation",
		},
		[]string{"kind"},
	)

	// UnmatchedEventsTotal counts remote events no local op was waiting for.
	UnmatchedEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worldsync_unmatched_events_total",
			Help: "Remote row events without a matching pending operation",
		},
		[]string{"kind"},
	)

	// SnapshotWritesTotal counts completed snapshot writes by result.
	SnapshotWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worldsync_snapshot_writes_total",
			Help: "Snapshot file writes by result",
		},
		[]string{"result"},
	)

	// SnapshotObjects is the object count of the last written snapshot.
	SnapshotObjects = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "worldsync_snapshot_objects",
			Help: "Number of world objects in the last written snapshot",
		},
	)

	// PendingOps is the number of live pending operations.
	PendingOps = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "worldsync_pending_ops",
			Help: "Local operations awaiting commit confirmation",
		},
	)

	// PendingTimeoutsTotal counts pending operations dropped after the timeout.
	PendingTimeoutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "worldsync_pending_timeouts_total",
			Help: "Pending operations that timed out without confirmation",
		},
	)

	// PendingSupersededTotal counts ops replaced by a newer op on the same id.
	PendingSupersededTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "worldsync_pending_superseded_total",
			Help: "Pending operations superseded before confirmation",
		},
	)

	// SyncStatus is 1 for the current status label and 0 for the others.
	SyncStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worldsync_sync_status",
			Help: "Current sync status (1 for the active status)",
		},
		[]string{"status"},
	)

	// RemoteConnected is 1 while the subscription is applied.
	RemoteConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "worldsync_remote_connected",
			Help: "Whether the remote subscription is connected",
		},
	)

	// EditRejectionsTotal counts edit requests rejected at the request boundary.
	EditRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worldsync_edit_rejections_total",
			Help: "Edit requests rejected before reaching the remote store",
		},
		[]string{"code"},
	)

	// ResolutionsTotal counts resolution attempts by action and outcome.
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worldsync_resolutions_total",
			Help: "Conflict resolution attempts",
		},
		[]string{"action", "outcome"},
	)

	// ResolutionDurationSeconds measures resolution attempts.
	ResolutionDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "worldsync_resolution_duration_seconds",
			Help:    "Duration of conflict resolution attempts",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"action"},
	)

	// GatewayReducerCallsTotal counts reducer calls served by the development
	// gateway.
	GatewayReducerCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worldsync_gateway_reducer_calls_total",
			Help: "Reducer calls handled by the gateway",
		},
		[]string{"reducer", "status"},
	)
)

// SetSyncStatus marks status as the active one.
func SetSyncStatus(status string) {
	for _, s := range []string{"syncing", "in_sync", "out_of_sync"} {
		v := 0.0
		if s == status {
			v = 1
		}
		SyncStatus.WithLabelValues(s).Set(v)
	}
}
