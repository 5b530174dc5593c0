package repository

import (
	"context"

	"github.com/jhoicas/Muestras-api/internal/domain/access"
	"github.com/jhoicas/Muestras-api/internal/domain/entity"
)

// TransferRepository define el puerto de persistencia de traslados.
// Los Get completan OriginCountryID con el país de la muestra de origen.
type TransferRepository interface {
	Create(ctx context.Context, transfer *entity.Transfer) error
	GetByID(ctx context.Context, id string) (*entity.Transfer, error)
	// GetForUpdate bloquea la fila del traslado (evita doble resolución concurrente).
	GetForUpdate(ctx context.Context, id string) (*entity.Transfer, error)
	// Resolve persiste estado, fecha de recepción, usuario destino, muestra destino y comentarios.
	Resolve(ctx context.Context, transfer *entity.Transfer) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter TransferFilter, scope access.Scope) ([]*entity.Transfer, int, error)
}
