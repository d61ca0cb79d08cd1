package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Tick coordination metrics
var (
	// TicksTotal tracks tick loop executions by the role held at that tick.
	TicksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "countdown_ticks_total",
			Help: "Tick loop executions by role (leader/follower/idle)",
		},
		[]string{"role"},
	)

	// LeaderState reports whether this participant currently acts as leader (1) or follower (0).
	LeaderState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "countdown_leader_state",
			Help: "Whether this participant currently acts as countdown leader",
		},
	)
)

// Broadcast channel metrics
var (
	// BroadcastsPublished tracks snapshots published on the sync channel.
	BroadcastsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broadcasts_published_total",
			Help: "Snapshots published on the sync channel by status",
		},
		[]string{"status"},
	)

	// BroadcastsReceived tracks inbound snapshots by disposition.
	BroadcastsReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broadcasts_received_total",
			Help: "Inbound snapshots by disposition (applied/self_echo/malformed)",
		},
		[]string{"disposition"},
	)

	// ChannelConnected reports sync channel connectivity (1 connected, 0 disconnected).
	ChannelConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sync_channel_connected",
			Help: "Whether the sync channel is currently connected",
		},
	)
)

// Persistence metrics
var (
	// StoreWrites tracks durable store replace-all writes by status.
	StoreWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_writes_total",
			Help: "Durable store replace-all writes by status",
		},
		[]string{"status"},
	)

	// CacheWrites tracks best-effort fallback cache writes by status.
	CacheWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fallback_cache_writes_total",
			Help: "Fallback cache writes by status",
		},
		[]string{"status"},
	)
)
