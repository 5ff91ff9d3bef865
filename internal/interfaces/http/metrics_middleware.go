package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "movements",
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Total de requests de la API por ruta, método y código.",
	}, []string{"route", "method", "code"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "movements",
		Subsystem: "api",
		Name:      "latency_seconds",
		Help:      "Latencia de los requests de la API.",
		Buckets: []float64{
			0.001, 0.005, 0.01, 0.05,
			0.1, 0.25, 0.5, 1,
			2.5, 5, 10, 20,
		},
	}, []string{"route", "method"})
)

// MetricsMiddleware registra conteo y latencia por ruta registrada (no por path, para
// no multiplicar series con los ids).
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		method := c.Method()
		httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
		httpLatency.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
		return err
	}
}

// MetricsHandler expone el registry por defecto de prometheus.
func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
