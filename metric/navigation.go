package metric

import "github.com/prometheus/client_golang/prometheus"

// Navigation contains the core navigation-tree metrics.
type Navigation struct {
	// Send queue
	SendsDispatched     prometheus.Counter
	SendsUnclaimed      prometheus.Counter
	DuplicateDeliveries prometheus.Counter
	ActionsInvoked      *prometheus.CounterVec
	PausedOverwrites    prometheus.Counter

	// Tree operations
	LockRejections    prometheus.Counter
	CheckpointReturns prometheus.Counter
	CheckpointMisses  prometheus.Counter
	PathDepth         *prometheus.GaugeVec
}

// NewNavigation creates the core navigation metrics (unregistered).
func NewNavigation() *Navigation {
	return &Navigation{
		SendsDispatched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "navtree_sends_dispatched_total",
			Help: "Queue values delivered to a consuming receiver",
		}),
		SendsUnclaimed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "navtree_sends_unclaimed_total",
			Help: "Queue values torn down with no matching receiver",
		}),
		DuplicateDeliveries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "navtree_duplicate_deliveries_total",
			Help: "Receivers that matched an already-consumed queue value",
		}),
		ActionsInvoked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "navtree_actions_invoked_total",
			Help: "Built-in navigation actions invoked from the send queue",
		}, []string{"kind"}),
		PausedOverwrites: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "navtree_paused_overwrites_total",
			Help: "Paused send tails silently replaced by a later pause",
		}),
		LockRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "navtree_lock_rejections_total",
			Help: "Destructive tree operations rejected by the navigation lock",
		}),
		CheckpointReturns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "navtree_checkpoint_returns_total",
			Help: "Successful returns to a named checkpoint",
		}),
		CheckpointMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "navtree_checkpoint_misses_total",
			Help: "Checkpoint returns that resolved no checkpoint",
		}),
		PathDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "navtree_path_depth",
			Help: "Current navigation path depth per named node",
		}, []string{"node"}),
	}
}
