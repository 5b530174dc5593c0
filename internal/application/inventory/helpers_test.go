package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Muestras-api/internal/application/dto"
	"github.com/jhoicas/Muestras-api/internal/application/inventory"
	"github.com/jhoicas/Muestras-api/internal/domain/entity"
	"github.com/jhoicas/Muestras-api/internal/infrastructure/memory"
)

// fixedNow 2 de enero de 2025: stem de muestras CO020125 / PE020125.
var fixedNow = time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)

type env struct {
	store     *memory.Store
	demo      memory.Demo
	ledger    *inventory.LedgerUseCase
	transfers *inventory.TransferUseCase
	metrics   *countingMetrics
}

func newEnv(t *testing.T, opts ...inventory.Option) *env {
	t.Helper()
	s := memory.NewStore()
	m := &countingMetrics{}
	opts = append([]inventory.Option{
		inventory.WithClock(func() time.Time { return fixedNow }),
		inventory.WithMetrics(m),
	}, opts...)
	return &env{
		store:     s,
		demo:      memory.SeedDemo(s),
		ledger:    inventory.NewLedgerUseCase(s, s.Samples(), s.Movements(), opts...),
		transfers: inventory.NewTransferUseCase(s, s.Transfers(), s.Samples(), opts...),
		metrics:   m,
	}
}

var (
	admin      = entity.Caller{UserID: "u-admin", Role: entity.RoleAdmin}
	commercial = entity.Caller{UserID: "u-com", Role: entity.RoleCommercial}
)

func (e *env) userCO() entity.Caller {
	return entity.Caller{UserID: "u-co", Role: entity.RoleUser, CountryIDs: []string{e.demo.CountryCO}}
}

func (e *env) userPE() entity.Caller {
	return entity.Caller{UserID: "u-pe", Role: entity.RoleUser, CountryIDs: []string{e.demo.CountryPE}}
}

func (e *env) sampleRequest(qty int) dto.RegisterSampleRequest {
	return dto.RegisterSampleRequest{
		Material:      "Cacao fino",
		Lot:           "L-01",
		Quantity:      qty,
		UnitWeight:    decimal.RequireFromString("1.5"),
		Unit:          entity.UnitKG,
		CountryID:     e.demo.CountryCO,
		CategoryID:    e.demo.Category,
		WarehouseID:   e.demo.WarehouseCO,
		LocationID:    e.demo.LocationCO,
		ResponsibleID: e.demo.Responsible,
	}
}

// registerCO registra una muestra en Colombia con la cantidad indicada.
func (e *env) registerCO(t *testing.T, qty int) *dto.SampleResponse {
	t.Helper()
	s, err := e.ledger.RegisterSample(context.Background(), admin, e.sampleRequest(qty))
	require.NoError(t, err)
	return s
}

func (e *env) quantity(t *testing.T, sampleID string) int {
	t.Helper()
	s, err := e.store.Samples().GetByID(context.Background(), sampleID)
	require.NoError(t, err)
	require.NotNil(t, s)
	return s.Quantity
}

func (e *env) movements(t *testing.T, sampleID string) []*entity.Movement {
	t.Helper()
	list, err := e.store.Movements().ListBySample(context.Background(), sampleID)
	require.NoError(t, err)
	return list
}

func (e *env) resolveComplete() dto.ResolveTransferRequest {
	return dto.ResolveTransferRequest{
		State:                    entity.TransferStateCompletado,
		DestinationWarehouseID:   e.demo.WarehousePE,
		DestinationLocationID:    e.demo.LocationPE,
		DestinationResponsibleID: e.demo.Responsible,
	}
}

type countingMetrics struct {
	mu            sync.Mutex
	applied       map[string]int
	deleted       int
	transfers     map[string]int
	codeConflicts map[string]int
}

func (m *countingMetrics) MovementApplied(t string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.applied == nil {
		m.applied = map[string]int{}
	}
	m.applied[t]++
}

func (m *countingMetrics) MovementDeleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted++
}

func (m *countingMetrics) TransferChanged(state string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.transfers == nil {
		m.transfers = map[string]int{}
	}
	m.transfers[state]++
}

func (m *countingMetrics) CodeConflict(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.codeConflicts == nil {
		m.codeConflicts = map[string]int{}
	}
	m.codeConflicts[kind]++
}
