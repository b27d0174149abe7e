// Package observability exposes the ops HTTP surface: liveness and
// Prometheus metrics for the bot's command handling and store access.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CommandsTotal counts handled slash commands by name and outcome.
	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pugbot",
		Name:      "commands_total",
		Help:      "Slash commands handled, by command name and outcome.",
	}, []string{"command", "outcome"})

	// StoreFailuresTotal counts storage errors surfaced to command handlers.
	StoreFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pugbot",
		Name:      "store_failures_total",
		Help:      "Storage failures observed by command handlers, by operation.",
	}, []string{"operation"})

	// QueueDepth reports the number of players currently waiting.
	QueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "pugbot",
		Name:      "queue_depth",
		Help:      "Players currently in the join-queue.",
	})
)
