package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feelify_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feelify_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Messaging metrics
	MessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feelify_messages_sent_total",
			Help: "Total direct messages persisted",
		},
	)

	ConversationsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feelify_conversations_created_total",
			Help: "Total conversations created",
		},
	)

	// Live delivery metrics. Pushes are best-effort: "skipped" means the
	// recipient had no live session at push time.
	PushesDelivered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feelify_live_pushes_delivered_total",
			Help: "Live events delivered to a connected session",
		},
		[]string{"event"},
	)

	PushesSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feelify_live_pushes_skipped_total",
			Help: "Live events dropped because the recipient was offline",
		},
		[]string{"event"},
	)

	// Notification metrics
	NotificationsFanned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feelify_notifications_fanned_total",
			Help: "Notification rows persisted by interaction kind",
		},
		[]string{"kind"},
	)

	// Presence metrics
	OpenSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "feelify_open_sessions",
			Help: "Currently registered live sessions",
		},
	)
)
