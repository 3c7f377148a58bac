package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the board's operational counters behind a private
// prometheus registry so tests never collide on the global default.
type Registry struct {
	reg *prometheus.Registry

	SnapshotsApplied        prometheus.Counter
	CorrectiveWrites        prometheus.Counter
	CorrectiveWriteFailures prometheus.Counter
	StaleAlerts             prometheus.Counter
	ImportedOrders          prometheus.Counter
	BoardOrders             prometheus.Gauge
}

// NewRegistry creates and registers all board metrics.
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	snapshots := prometheus.NewCounter(prometheus.CounterOpts{Name: "printflow_snapshots_applied_total"})
	corrective := prometheus.NewCounter(prometheus.CounterOpts{Name: "printflow_corrective_writes_total"})
	correctiveFailed := prometheus.NewCounter(prometheus.CounterOpts{Name: "printflow_corrective_write_failures_total"})
	staleAlerts := prometheus.NewCounter(prometheus.CounterOpts{Name: "printflow_stale_alerts_total"})
	imported := prometheus.NewCounter(prometheus.CounterOpts{Name: "printflow_imported_orders_total"})
	boardOrders := prometheus.NewGauge(prometheus.GaugeOpts{Name: "printflow_board_orders"})

	r.MustRegister(snapshots, corrective, correctiveFailed, staleAlerts, imported, boardOrders)

	return &Registry{
		reg:                     r,
		SnapshotsApplied:        snapshots,
		CorrectiveWrites:        corrective,
		CorrectiveWriteFailures: correctiveFailed,
		StaleAlerts:             staleAlerts,
		ImportedOrders:          imported,
		BoardOrders:             boardOrders,
	}
}

// Handler exposes the registry for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
