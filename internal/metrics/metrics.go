package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// committed mutations only; rejections are counted separately
	OperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "point_operations_total",
			Help: "Total committed point mutations",
		},
		[]string{"type"}, // CHARGE|USE
	)

	RejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "point_rejections_total",
			Help: "Total rejected charge/use attempts",
		},
		[]string{"reason"}, // invalid_amount|insufficient_points|point_overflow|internal
	)

	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current audit worker queue depth",
		},
	)
)

var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(OperationsTotal)
	prometheus.MustRegister(RejectionsTotal)
	prometheus.MustRegister(WorkerQueueDepth)
}
