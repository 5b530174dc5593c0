package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Muestras-api/internal/application/dto"
	"github.com/jhoicas/Muestras-api/internal/application/inventory"
	"github.com/jhoicas/Muestras-api/internal/domain"
	"github.com/jhoicas/Muestras-api/internal/infrastructure/memory"
	"github.com/jhoicas/Muestras-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Muestras-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Muestras-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Muestras-api/pkg/jwt"
	"github.com/jhoicas/Muestras-api/pkg/logger"
)

type apiFixture struct {
	app  *fiber.App
	demo memory.Demo
}

func newAPI(t *testing.T, runner inventory.TxRunner) *apiFixture {
	t.Helper()
	store := memory.NewStore()
	demo := memory.SeedDemo(store)
	if runner == nil {
		runner = store
	}
	rec := metrics.NewRecorder("test")
	opts := []inventory.Option{
		inventory.WithMetrics(rec),
		inventory.WithPDFGenerator(pdf.NewKardexPDFGenerator("Kardex de muestra")),
	}
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Ledger:    inventory.NewLedgerUseCase(runner, store.Samples(), store.Movements(), opts...),
		Transfers: inventory.NewTransferUseCase(runner, store.Transfers(), store.Samples(), opts...),
		JWTSecret: testJWTSecret,
		Logger:    logger.Nop(),
		Metrics:   rec,
	})
	return &apiFixture{app: app, demo: demo}
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func (f *apiFixture) sampleBody() map[string]any {
	return map[string]any{
		"material":       "Café pergamino",
		"lote":           "L-9",
		"cantidad":       100,
		"peso_unitario":  "0.5",
		"unidad_medida":  "kg",
		"pais_id":        f.demo.CountryCO,
		"bodega_id":      f.demo.WarehouseCO,
		"ubicacion_id":   f.demo.LocationCO,
		"responsable_id": f.demo.Responsible,
	}
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e), string(body))
	return e.Code
}

func TestAPI_FlujoMuestraYMovimientos(t *testing.T) {
	f := newAPI(t, nil)
	adminTok := tokenForRole(t, "ADMIN")
	userCO := tokenForRole(t, "USER", f.demo.CountryCO)
	userPE := tokenForRole(t, "USER", f.demo.CountryPE)

	resp, body := f.do(t, http.MethodPost, "/api/muestras", userCO, f.sampleBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var sample dto.SampleResponse
	require.NoError(t, json.Unmarshal(body, &sample))
	assert.Equal(t, 100, sample.Quantity)
	assert.Len(t, sample.Code, 11)

	resp, body = f.do(t, http.MethodPost, "/api/movimientos", userCO, dto.RegisterMovementRequest{
		SampleID: sample.ID, Type: "SALIDA", Quantity: 30, Reason: "Análisis",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var mov dto.MovementResponse
	require.NoError(t, json.Unmarshal(body, &mov))
	assert.Equal(t, 70, mov.QuantityAfter)

	resp, body = f.do(t, http.MethodPost, "/api/movimientos", userCO, dto.RegisterMovementRequest{
		SampleID: sample.ID, Type: "SALIDA", Quantity: 100, Reason: "Análisis",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(t, body))

	resp, body = f.do(t, http.MethodGet, "/api/muestras/"+sample.ID, userPE, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, body))

	resp, body = f.do(t, http.MethodGet, "/api/muestras/00000000-0000-0000-0000-00000000dead", adminTok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, body))

	resp, _ = f.do(t, http.MethodDelete, "/api/movimientos/"+mov.ID, userCO, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "solo ADMIN elimina movimientos")

	resp, body = f.do(t, http.MethodDelete, "/api/movimientos/"+mov.ID, adminTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = f.do(t, http.MethodGet, "/api/muestras/"+sample.ID+"/kardex", userCO, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var k dto.KardexResponse
	require.NoError(t, json.Unmarshal(body, &k))
	assert.Equal(t, 100, k.Sample.Quantity)
	assert.True(t, k.Consistent)
	assert.Len(t, k.Movements, 1)

	resp, body = f.do(t, http.MethodGet, "/api/muestras?limit=5", userPE, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.ListResponse[dto.SampleResponse]
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Zero(t, list.Page.Total)
	assert.Equal(t, 5, list.Page.Limit)
}

func TestAPI_ActualizarMuestra(t *testing.T) {
	f := newAPI(t, nil)
	tok := tokenForRole(t, "ADMIN")
	_, body := f.do(t, http.MethodPost, "/api/muestras", tok, f.sampleBody())
	var sample dto.SampleResponse
	require.NoError(t, json.Unmarshal(body, &sample))

	resp, body := f.do(t, http.MethodPatch, "/api/muestras/"+sample.ID, tok, map[string]any{"lote": "L-10"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var updated dto.SampleResponse
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "L-10", updated.Lot)
	assert.Equal(t, sample.Material, updated.Material)

	resp, body = f.do(t, http.MethodPatch, "/api/muestras/"+sample.ID, tok, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, body))
}

func TestAPI_FlujoTraslado(t *testing.T) {
	f := newAPI(t, nil)
	userCO := tokenForRole(t, "USER", f.demo.CountryCO)
	userPE := tokenForRole(t, "USER", f.demo.CountryPE)
	adminTok := tokenForRole(t, "ADMIN")

	_, body := f.do(t, http.MethodPost, "/api/muestras", userCO, f.sampleBody())
	var sample dto.SampleResponse
	require.NoError(t, json.Unmarshal(body, &sample))

	resp, body := f.do(t, http.MethodPost, "/api/traslados", userCO, dto.CreateTransferRequest{
		OriginSampleID: sample.ID, Quantity: 40, DestinationCountryID: f.demo.CountryPE, Reason: "Feria",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var tr dto.TransferResponse
	require.NoError(t, json.Unmarshal(body, &tr))
	assert.Equal(t, "ENVIADO", tr.State)

	resp, _ = f.do(t, http.MethodPut, "/api/traslados/"+tr.ID+"/cancelar", userPE, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = f.do(t, http.MethodPut, "/api/traslados/"+tr.ID, userPE, dto.ResolveTransferRequest{
		State:                    "COMPLETADO",
		DestinationWarehouseID:   f.demo.WarehousePE,
		DestinationLocationID:    f.demo.LocationPE,
		DestinationResponsibleID: f.demo.Responsible,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	require.NoError(t, json.Unmarshal(body, &tr))
	assert.Equal(t, "COMPLETADO", tr.State)
	require.NotNil(t, tr.DestinationSample)
	assert.Equal(t, 40, tr.DestinationSample.Quantity)

	resp, body = f.do(t, http.MethodPut, "/api/traslados/"+tr.ID, userPE, dto.ResolveTransferRequest{State: "RECHAZADO", Comments: "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, body))

	resp, body = f.do(t, http.MethodGet, "/api/traslados", userCO, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.ListResponse[dto.TransferResponse]
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Equal(t, 1, list.Page.Total)

	resp, _ = f.do(t, http.MethodDelete, "/api/traslados/"+tr.ID, adminTok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = f.do(t, http.MethodGet, "/api/traslados/"+tr.ID, adminTok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_KardexPDF(t *testing.T) {
	f := newAPI(t, nil)
	tok := tokenForRole(t, "COMMERCIAL")
	_, body := f.do(t, http.MethodPost, "/api/muestras", tok, f.sampleBody())
	var sample dto.SampleResponse
	require.NoError(t, json.Unmarshal(body, &sample))

	resp, body := f.do(t, http.MethodGet, "/api/muestras/"+sample.ID+"/kardex/pdf", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "kardex-"+sample.Code+".pdf")
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestAPI_CuerpoInvalido(t *testing.T) {
	f := newAPI(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/movimientos", bytes.NewReader([]byte("{no json")))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, "ADMIN"))
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", errorCode(t, body))
}

type conflictRunner struct{}

func (conflictRunner) Run(context.Context, func(inventory.TxRepos) error) error {
	return domain.ErrCodeConflict
}

func TestAPI_ConflictoDeCodigo(t *testing.T) {
	f := newAPI(t, conflictRunner{})
	resp, body := f.do(t, http.MethodPost, "/api/muestras", tokenForRole(t, "ADMIN"), f.sampleBody())
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CODE_CONFLICT", errorCode(t, body))
}

func TestAPI_SinTokenYRolDesconocido(t *testing.T) {
	f := newAPI(t, nil)
	resp, _ := f.do(t, http.MethodGet, "/api/muestras", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "AUDITOR", nil, testIssuer, testExpMin)
	require.NoError(t, err)
	resp, _ = f.do(t, http.MethodGet, "/api/muestras", "Bearer "+tok, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAPI_Metricas(t *testing.T) {
	f := newAPI(t, nil)
	f.do(t, http.MethodGet, "/api/muestras", tokenForRole(t, "ADMIN"), nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := f.app.Test(req, int(5*time.Second/time.Millisecond))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "test_http_requests_total")
}
