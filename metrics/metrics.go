// Package metrics exposes the bot's Prometheus instrumentation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// APIRequests counts outbound backend calls by HTTP method.
	APIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventos_bot_api_requests_total",
		Help: "Outbound backend API calls.",
	}, []string{"method"})

	// APIRetries counts resends caused by transport timeouts.
	APIRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eventos_bot_api_retries_total",
		Help: "Backend API calls resent after a transport timeout.",
	})

	// APIFailures counts failed backend calls by failure kind.
	APIFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventos_bot_api_failures_total",
		Help: "Failed backend API calls by classification.",
	}, []string{"kind"})

	// UpdatesHandled counts processed chat updates by type.
	UpdatesHandled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventos_bot_updates_handled_total",
		Help: "Chat updates handled, by update type.",
	}, []string{"type"})

	// ActiveSessions tracks the number of active chat sessions.
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "eventos_bot_active_sessions",
		Help: "Chat sessions currently active.",
	})

	// SessionRenewals counts token renewals by trigger.
	SessionRenewals = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventos_bot_session_renewals_total",
		Help: "Session token renewals, by trigger.",
	}, []string{"trigger"})
)

// Handler serves the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
