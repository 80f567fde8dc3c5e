// Package metrics expone las métricas Prometheus del servicio.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "advisor_crm"

// Metrics colectores de la API. Se registran en el Registerer recibido para que
// los tests usen un registro propio.
type Metrics struct {
	gatherer prometheus.Gatherer

	RequestDuration   *prometheus.HistogramVec
	RequestCounter    *prometheus.CounterVec
	ErrorCounter      *prometheus.CounterVec
	TenantResolutions *prometheus.CounterVec
	TenantCache       *prometheus.CounterVec
}

// New registra los colectores en reg. Si reg es nil usa el registro por defecto.
func New(reg *prometheus.Registry) *Metrics {
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if reg != nil {
		registerer, gatherer = reg, reg
	}
	f := promauto.With(registerer)

	return &Metrics{
		gatherer: gatherer,
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		RequestCounter: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total number of API requests",
		}, []string{"method", "route"}),
		ErrorCounter: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_errors_total",
			Help:      "Total number of API errors",
		}, []string{"method", "route", "status"}),
		TenantResolutions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tenant_resolutions_total",
			Help:      "Tenant resolutions by strategy and outcome",
		}, []string{"strategy", "outcome"}),
		TenantCache: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tenant_cache_lookups_total",
			Help:      "Tenant directory cache lookups by result",
		}, []string{"result"}),
	}
}

// ObserveRequest registra una petición terminada.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	code := strconv.Itoa(status)
	m.RequestCounter.WithLabelValues(method, route).Inc()
	m.RequestDuration.WithLabelValues(method, route, code).Observe(elapsed.Seconds())
	if status >= 400 {
		m.ErrorCounter.WithLabelValues(method, route, code).Inc()
	}
}

// TenantResolved cuenta una resolución de tenant.
func (m *Metrics) TenantResolved(strategy string, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "failed"
	}
	m.TenantResolutions.WithLabelValues(strategy, outcome).Inc()
}

// CacheLookup cuenta un acceso a la caché del directorio (hit, miss, error).
func (m *Metrics) CacheLookup(result string) {
	m.TenantCache.WithLabelValues(result).Inc()
}

// Handler endpoint /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
