package upstream

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jhoicas/movements-api/internal/domain"
)

var (
	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "movements",
		Subsystem: "upstream",
		Name:      "requests_total",
		Help:      "Total de llamadas al servicio de movimientos por operación y resultado.",
	}, []string{"operation", "result"})

	upstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "movements",
		Subsystem: "upstream",
		Name:      "latency_seconds",
		Help:      "Latencia de las llamadas al servicio de movimientos.",
		Buckets: []float64{
			0.005, 0.01, 0.02, 0.05,
			0.1, 0.2, 0.5, 1,
			2, 5, 10, 20,
		},
	}, []string{"operation", "result"})
)

// Operaciones contra el servicio de movimientos.
const (
	opLatest       = "latest"
	opShipments    = "shipment"
	opEmptyRepoJob = "empty_repo_job"
	opBulkCreate   = "bulk_create"
	opPatchDate    = "patch_date"
)

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrTimeout):
		return "timeout"
	default:
		return "error"
	}
}

func recordCall(operation string, err error, latency time.Duration) {
	labels := prometheus.Labels{
		"operation": operation,
		"result":    resultLabel(err),
	}
	upstreamRequests.With(labels).Inc()
	upstreamLatency.With(labels).Observe(latency.Seconds())
}
