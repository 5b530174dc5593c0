package codegen_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Muestras-api/internal/domain/codegen"
)

func TestStem_PaisYFecha(t *testing.T) {
	d := time.Date(2024, time.March, 7, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "PE070324", codegen.Stem("pe", d))
	assert.Equal(t, "TR070324", codegen.Stem(codegen.DefaultTransferPrefix, d))
}

func TestFormat_RellenaTresDigitos(t *testing.T) {
	assert.Equal(t, "PE070324001", codegen.Format("PE070324", 1))
	assert.Equal(t, "PE070324042", codegen.Format("PE070324", 42))
	assert.Equal(t, "PE070324999", codegen.Format("PE070324", 999))
	// Desborde aceptado: el ancho crece a 4 dígitos.
	assert.Equal(t, "PE0703241000", codegen.Format("PE070324", 1000))
}

func TestCorrelative(t *testing.T) {
	n, ok := codegen.Correlative("CO010124", "CO010124017")
	assert.True(t, ok)
	assert.Equal(t, 17, n)

	_, ok = codegen.Correlative("CO010124", "PE010124017")
	assert.False(t, ok)
}
