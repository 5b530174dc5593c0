package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Kardex(t *testing.T) {
	r := NewRecorder("muestras")

	r.MovementApplied("SALIDA", 30)
	r.MovementApplied("SALIDA", 20)
	r.MovementApplied("ENTRADA", 100)
	r.MovementDeleted()
	r.TransferChanged("ENVIADO")
	r.CodeConflict("muestras")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.movements.WithLabelValues("SALIDA")))
	assert.Equal(t, 50.0, testutil.ToFloat64(r.movedUnits.WithLabelValues("SALIDA")))
	assert.Equal(t, 100.0, testutil.ToFloat64(r.movedUnits.WithLabelValues("ENTRADA")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.movementsDeleted))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.transfers.WithLabelValues("ENVIADO")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.codeConflicts.WithLabelValues("muestras")))
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder("muestras")
	r.ObserveHTTP("GET", "/api/muestras/:id", 200, 15*time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `muestras_http_requests_total{method="GET",route="/api/muestras/:id",status="200"} 1`)
	assert.Contains(t, string(body), "muestras_http_request_duration_seconds_bucket")
}
