// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequestDuration tracks REST call duration against the backend.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "client_api_request_duration_seconds",
			Help:    "Backend REST request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// APIRequestsTotal tracks total REST calls against the backend.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "client_api_requests_total",
			Help: "Total backend REST requests",
		},
		[]string{"method", "path", "status"},
	)

	// SocketConnected reports whether the live transport is connected.
	SocketConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "client_socket_connected",
			Help: "1 when the realtime transport is connected, 0 otherwise",
		},
	)

	// SocketReconnectsTotal tracks reconnect attempts.
	SocketReconnectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "client_socket_reconnects_total",
			Help: "Total realtime transport reconnect attempts",
		},
	)

	// SocketEventsTotal tracks realtime events by name and direction.
	SocketEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "client_socket_events_total",
			Help: "Total realtime events processed",
		},
		[]string{"event", "direction"},
	)

	// MessagesMergedTotal tracks merge outcomes in the conversation store.
	MessagesMergedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "client_messages_merged_total",
			Help: "Conversation store merge outcomes",
		},
		[]string{"result"},
	)

	// UnreadMessages reports the current total unread count across peers.
	UnreadMessages = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "client_unread_messages",
			Help: "Total unread messages across all conversations",
		},
	)

	// CacheWritesTotal tracks local snapshot persistence attempts.
	CacheWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "client_cache_writes_total",
			Help: "Local conversation snapshot writes",
		},
		[]string{"status"},
	)
)

// RecordAPIRequest records duration and count for a backend REST call.
func RecordAPIRequest(method, path, status string, durationSec float64) {
	APIRequestDuration.WithLabelValues(method, path, status).Observe(durationSec)
	APIRequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordSocketEvent records a realtime event.
func RecordSocketEvent(event, direction string) {
	SocketEventsTotal.WithLabelValues(event, direction).Inc()
}
