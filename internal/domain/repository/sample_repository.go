package repository

import (
	"context"

	"github.com/jhoicas/Muestras-api/internal/domain/access"
	"github.com/jhoicas/Muestras-api/internal/domain/entity"
)

// SampleRepository define el puerto de persistencia para muestras (usable con pool o tx).
// Los Get devuelven (nil, nil) si la muestra no existe.
type SampleRepository interface {
	Create(ctx context.Context, sample *entity.Sample) error
	GetByID(ctx context.Context, id string) (*entity.Sample, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Sample, error)
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	Update(ctx context.Context, id string, changes entity.SampleChangeset) error
	List(ctx context.Context, filter SampleFilter, scope access.Scope) ([]*entity.Sample, int, error)
}
