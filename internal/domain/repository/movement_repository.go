package repository

import (
	"context"

	"github.com/jhoicas/Muestras-api/internal/domain/access"
	"github.com/jhoicas/Muestras-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia del kardex.
type MovementRepository interface {
	// Create persiste el movimiento y asigna ID y Seq.
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	Delete(ctx context.Context, id string) error
	// LatestBySample devuelve el último movimiento de la muestra según Seq.
	LatestBySample(ctx context.Context, sampleID string) (*entity.Movement, error)
	// ListBySample devuelve todos los movimientos de la muestra en orden de ledger (Seq ascendente).
	ListBySample(ctx context.Context, sampleID string) ([]*entity.Movement, error)
	List(ctx context.Context, filter MovementFilter, scope access.Scope) ([]*entity.Movement, int, error)
}
