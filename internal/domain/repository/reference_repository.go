package repository

import (
	"context"

	"github.com/jhoicas/Muestras-api/internal/domain/entity"
)

// ReferenceRepository lectura de datos maestros para revalidar llaves foráneas.
// Los Get devuelven (nil, nil) si no existe.
type ReferenceRepository interface {
	GetCountry(ctx context.Context, id string) (*entity.Country, error)
	GetWarehouse(ctx context.Context, id string) (*entity.Warehouse, error)
	GetLocation(ctx context.Context, id string) (*entity.Location, error)
	CategoryExists(ctx context.Context, id string) (bool, error)
	SupplierExists(ctx context.Context, id string) (bool, error)
	ResponsibleExists(ctx context.Context, id string) (bool, error)
}
