package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Muestras-api/internal/domain/entity"
)

func TestGenerateKardexPDF(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	sample := &entity.Sample{
		ID:           "s1",
		Code:         "CO140325001",
		Material:     "Cacao fino",
		Lot:          "L-7",
		Quantity:     70,
		UnitWeight:   decimal.RequireFromString("1.5"),
		Unit:         entity.UnitKG,
		TotalWeight:  decimal.RequireFromString("150"),
		RegisteredAt: now,
	}
	movs := []*entity.Movement{
		{ID: "m1", Seq: 1, Type: entity.MovementTypeEntrada, QuantityMoved: 100, QuantityBefore: 0, QuantityAfter: 100, Reason: "Registro inicial", Date: now},
		{ID: "m2", Seq: 2, Type: entity.MovementTypeSalida, QuantityMoved: 30, QuantityBefore: 100, QuantityAfter: 70, Reason: "Consumo", Date: now.Add(time.Hour)},
	}

	doc, err := NewKardexPDFGenerator("").GenerateKardexPDF(context.Background(), sample, movs)
	require.NoError(t, err)
	require.NotEmpty(t, doc)
	assert.Equal(t, "%PDF", string(doc[:4]))
}

func TestGenerateKardexPDF_SinMovimientos(t *testing.T) {
	sample := &entity.Sample{ID: "s1", Code: "CO140325002", Material: "Café", Unit: entity.UnitG}

	doc, err := NewKardexPDFGenerator("Kardex").GenerateKardexPDF(context.Background(), sample, nil)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(doc[:4]))
}

func TestFormatThousands(t *testing.T) {
	assert.Equal(t, "0", formatThousands(0))
	assert.Equal(t, "999", formatThousands(999))
	assert.Equal(t, "25.000", formatThousands(25000))
	assert.Equal(t, "1.000.000", formatThousands(1000000))
	assert.Equal(t, "-1.500", formatThousands(-1500))
}
