package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Muestras-api/internal/application/inventory"
	"github.com/jhoicas/Muestras-api/internal/domain"
	"github.com/jhoicas/Muestras-api/internal/domain/access"
	"github.com/jhoicas/Muestras-api/internal/domain/entity"
	"github.com/jhoicas/Muestras-api/internal/domain/repository"
)

func newSample(d Demo, id, code string) *entity.Sample {
	return &entity.Sample{
		ID: id, Code: code, Material: "Cacao", Unit: entity.UnitKG,
		RegisteredAt: time.Now(), CountryID: d.CountryCO,
		WarehouseID: d.WarehouseCO, LocationID: d.LocationCO, ResponsibleID: d.Responsible,
	}
}

func TestRun_RollbackDescartaEscrituras(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	d := SeedDemo(s)
	boom := errors.New("boom")

	err := s.Run(ctx, func(r inventory.TxRepos) error {
		require.NoError(t, r.Samples.Create(ctx, newSample(d, "s1", "CO010125001")))
		require.NoError(t, r.Movements.Create(ctx, &entity.Movement{SampleID: "s1", Type: entity.MovementTypeEntrada, QuantityMoved: 5, QuantityAfter: 5}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.Samples().GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
	movs, err := s.Movements().ListBySample(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestRun_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := NewStore().Run(ctx, func(inventory.TxRepos) error { called = true; return nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestSampleCreate_CodigoDuplicado(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	d := SeedDemo(s)

	require.NoError(t, s.Samples().Create(ctx, newSample(d, "s1", "CO010125001")))
	err := s.Samples().Create(ctx, newSample(d, "s2", "CO010125001"))
	assert.ErrorIs(t, err, domain.ErrCodeConflict)
}

func TestSequenceNext(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	d := SeedDemo(s)
	require.NoError(t, s.Samples().Create(ctx, newSample(d, "s1", "CO010125001")))
	require.NoError(t, s.Samples().Create(ctx, newSample(d, "s2", "CO010125002")))

	var first, second, other int
	require.NoError(t, s.Run(ctx, func(r inventory.TxRepos) error {
		var err error
		if first, err = r.Sequences.Next(ctx, repository.CodeKindSample, "CO010125"); err != nil {
			return err
		}
		if second, err = r.Sequences.Next(ctx, repository.CodeKindSample, "CO010125"); err != nil {
			return err
		}
		other, err = r.Sequences.Next(ctx, repository.CodeKindTransfer, "CO010125")
		return err
	}))
	assert.Equal(t, 3, first)
	assert.Equal(t, 4, second, "un correlativo reservado no se vuelve a entregar")
	assert.Equal(t, 1, other, "cada tabla numera por separado")
}

func TestMovementCreate_AsignaSecuenciaCreciente(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	d := SeedDemo(s)
	require.NoError(t, s.Samples().Create(ctx, newSample(d, "s1", "CO010125001")))

	a := &entity.Movement{SampleID: "s1", Type: entity.MovementTypeEntrada, QuantityMoved: 1, QuantityAfter: 1}
	b := &entity.Movement{SampleID: "s1", Type: entity.MovementTypeEntrada, QuantityMoved: 1, QuantityBefore: 1, QuantityAfter: 2}
	require.NoError(t, s.Movements().Create(ctx, a))
	require.NoError(t, s.Movements().Create(ctx, b))
	assert.Less(t, a.Seq, b.Seq)

	latest, err := s.Movements().LatestBySample(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, b.ID, latest.ID)
}

func TestTransferDelete_DesvinculaMovimientos(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	d := SeedDemo(s)
	require.NoError(t, s.Samples().Create(ctx, newSample(d, "s1", "CO010125001")))
	tr := &entity.Transfer{ID: "t1", Code: "TR010125001", OriginSampleID: "s1", Quantity: 1, DestinationCountryID: d.CountryPE, State: entity.TransferStateRechazado}
	require.NoError(t, s.Transfers().Create(ctx, tr))
	mov := &entity.Movement{SampleID: "s1", Type: entity.MovementTypeEntrada, QuantityMoved: 1, QuantityAfter: 1, TransferID: "t1", TransferCode: "TR010125001"}
	require.NoError(t, s.Movements().Create(ctx, mov))

	require.NoError(t, s.Transfers().Delete(ctx, "t1"))

	got, err := s.Movements().GetByID(ctx, mov.ID)
	require.NoError(t, err)
	assert.Empty(t, got.TransferID)
	assert.Equal(t, "TR010125001", got.TransferCode)
	assert.True(t, got.FromTransfer())
	gone, err := s.Transfers().GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestTransferList_AlcancePorOrigenODestino(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	d := SeedDemo(s)
	require.NoError(t, s.Samples().Create(ctx, newSample(d, "s1", "CO010125001")))
	require.NoError(t, s.Transfers().Create(ctx, &entity.Transfer{ID: "t1", Code: "TR010125001", OriginSampleID: "s1", Quantity: 1, DestinationCountryID: d.CountryPE, State: entity.TransferStateEnviado}))

	for name, tc := range map[string]struct {
		countries []string
		want      int
	}{
		"origen":  {[]string{d.CountryCO}, 1},
		"destino": {[]string{d.CountryPE}, 1},
		"ninguno": {[]string{"otro"}, 0},
	} {
		t.Run(name, func(t *testing.T) {
			scope := access.ScopeFor(entity.Caller{UserID: "u", Role: entity.RoleUser, CountryIDs: tc.countries})
			list, total, err := s.Transfers().List(ctx, repository.TransferFilter{Limit: 10}, scope)
			require.NoError(t, err)
			assert.Equal(t, tc.want, total)
			assert.Len(t, list, tc.want)
			if tc.want > 0 {
				assert.Equal(t, d.CountryCO, list[0].OriginCountryID)
			}
		})
	}
}

func TestSampleList_Paginacion(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	d := SeedDemo(s)
	for i, code := range []string{"CO010125001", "CO010125002", "CO010125003"} {
		smp := newSample(d, code, code)
		smp.RegisteredAt = time.Date(2025, 1, 1, i, 0, 0, 0, time.UTC)
		require.NoError(t, s.Samples().Create(ctx, smp))
	}

	list, total, err := s.Samples().List(ctx, repository.SampleFilter{Limit: 2, Offset: 1}, access.Unrestricted())
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, list, 2)
	assert.Equal(t, "CO010125002", list[0].Code)
	assert.Equal(t, "CO010125001", list[1].Code)

	list, total, err = s.Samples().List(ctx, repository.SampleFilter{Search: "003", Limit: 10}, access.Unrestricted())
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "CO010125003", list[0].Code)
}
