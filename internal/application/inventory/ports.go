package inventory

import (
	"context"

	"github.com/jhoicas/Muestras-api/internal/domain/entity"
	"github.com/jhoicas/Muestras-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Samples   repository.SampleRepository
	Movements repository.MovementRepository
	Transfers repository.TransferRepository
	Sequences repository.CodeSequenceRepository
	Refs      repository.ReferenceRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda ninguna escritura parcial (Rollback completo).
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}

// Metrics recibe eventos del ledger ya confirmados (commit).
type Metrics interface {
	MovementApplied(movementType string, quantity int)
	MovementDeleted()
	TransferChanged(state string)
	CodeConflict(kind string)
}

// KardexPDFGenerator genera la representación imprimible del kardex de una muestra.
type KardexPDFGenerator interface {
	GenerateKardexPDF(ctx context.Context, sample *entity.Sample, movements []*entity.Movement) ([]byte, error)
}

type nopMetrics struct{}

func (nopMetrics) MovementApplied(string, int) {}
func (nopMetrics) MovementDeleted()            {}
func (nopMetrics) TransferChanged(string)      {}
func (nopMetrics) CodeConflict(string)         {}
