package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ReportsGenerated counts successfully assembled daily reports.
	ReportsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "notifier",
		Name:      "reports_generated_total",
		Help:      "Total number of daily reports assembled",
	})

	// BroadcastDeliveries counts reports delivered during scheduled broadcasts.
	BroadcastDeliveries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "notifier",
		Name:      "broadcast_deliveries_total",
		Help:      "Total number of reports delivered by the scheduled broadcast",
	})

	// BroadcastFailures counts per-recipient broadcast failures by stage.
	BroadcastFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "notifier",
		Name:      "broadcast_failures_total",
		Help:      "Total number of per-recipient broadcast failures",
	}, []string{"stage"})
)

// Handler exposes the default prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
