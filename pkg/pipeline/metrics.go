package pipeline

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts processed rows per congruence class.
type Metrics struct {
	rowsProcessed prometheus.Counter
	congruence    *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		rowsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aforo",
			Name:      "rows_processed_total",
			Help:      "OD rows pushed through the pipeline.",
		}),
		congruence: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aforo",
			Name:      "rows_congruence_total",
			Help:      "OD rows by congruence class.",
		}, []string{"class"}),
	}
	reg.MustRegister(m.rowsProcessed, m.congruence)
	return m
}

func (m *Metrics) ObserveRows(rows []*Row) {
	for _, row := range rows {
		m.rowsProcessed.Inc()
		m.congruence.WithLabelValues(strconv.Itoa(row.CongruenceID)).Inc()
	}
}
