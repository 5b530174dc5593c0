// Package metrics expone métricas Prometheus del kardex y del servidor HTTP.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Muestras-api/internal/application/inventory"
)

var _ inventory.Metrics = (*Recorder)(nil)

// Recorder colectores propios en un registro dedicado (no el global de prometheus).
type Recorder struct {
	registry *prometheus.Registry

	movements        *prometheus.CounterVec
	movedUnits       *prometheus.CounterVec
	movementsDeleted prometheus.Counter
	transfers        *prometheus.CounterVec
	codeConflicts    *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewRecorder crea y registra los colectores bajo el namespace dado.
func NewRecorder(namespace string) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		movements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "movimientos_total",
			Help: "Movimientos de kardex confirmados por tipo.",
		}, []string{"tipo"}),
		movedUnits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "cantidad_movida_total",
			Help: "Unidades movidas por tipo de movimiento.",
		}, []string{"tipo"}),
		movementsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "movimientos_eliminados_total",
			Help: "Movimientos revertidos por un administrador.",
		}),
		transfers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "traslados_total",
			Help: "Transiciones de traslados por estado resultante.",
		}, []string{"estado"}),
		codeConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "conflictos_codigo_total",
			Help: "Colisiones de código generado que obligaron a reintentar la transacción.",
		}, []string{"tabla"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "http_requests_total",
			Help: "Requests HTTP por método, ruta y status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help:    "Latencia de requests HTTP.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.movements, r.movedUnits, r.movementsDeleted, r.transfers, r.codeConflicts,
		r.httpRequests, r.httpDuration,
	)
	return r
}

// MovementApplied cuenta un movimiento confirmado.
func (r *Recorder) MovementApplied(movementType string, quantity int) {
	r.movements.WithLabelValues(movementType).Inc()
	r.movedUnits.WithLabelValues(movementType).Add(float64(quantity))
}

// MovementDeleted cuenta una reversión administrativa.
func (r *Recorder) MovementDeleted() { r.movementsDeleted.Inc() }

// TransferChanged cuenta un traslado que llegó al estado dado.
func (r *Recorder) TransferChanged(state string) { r.transfers.WithLabelValues(state).Inc() }

// CodeConflict cuenta una colisión de código.
func (r *Recorder) CodeConflict(kind string) { r.codeConflicts.WithLabelValues(kind).Inc() }

// ObserveHTTP registra un request terminado. route es el patrón (/api/muestras/:id), no la URL.
func (r *Recorder) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler expone el registro en formato Prometheus.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry acceso al registro (pruebas y colectores adicionales).
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }
