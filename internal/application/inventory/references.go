package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Muestras-api/internal/domain"
	"github.com/jhoicas/Muestras-api/internal/domain/entity"
	"github.com/jhoicas/Muestras-api/internal/domain/repository"
)

// placement ubicación física de una muestra dentro de un país.
type placement struct {
	CountryID     string
	WarehouseID   string
	LocationID    string
	ResponsibleID string
}

// checkPlacement revalida que bodega, ubicación y responsable existan y sean coherentes:
// la bodega pertenece al país y la ubicación a la bodega. Devuelve el país.
func checkPlacement(ctx context.Context, refs repository.ReferenceRepository, p placement) (*entity.Country, error) {
	country, err := refs.GetCountry(ctx, p.CountryID)
	if err != nil {
		return nil, fmt.Errorf("consultar país: %w", err)
	}
	if country == nil {
		return nil, domain.NewValidationError("el país no existe")
	}
	wh, err := refs.GetWarehouse(ctx, p.WarehouseID)
	if err != nil {
		return nil, fmt.Errorf("consultar bodega: %w", err)
	}
	if wh == nil {
		return nil, domain.NewValidationError("la bodega no existe")
	}
	if wh.CountryID != country.ID {
		return nil, domain.NewValidationError("la bodega no pertenece al país de la muestra")
	}
	loc, err := refs.GetLocation(ctx, p.LocationID)
	if err != nil {
		return nil, fmt.Errorf("consultar ubicación: %w", err)
	}
	if loc == nil {
		return nil, domain.NewValidationError("la ubicación no existe")
	}
	if loc.WarehouseID != wh.ID {
		return nil, domain.NewValidationError("la ubicación no pertenece a la bodega")
	}
	ok, err := refs.ResponsibleExists(ctx, p.ResponsibleID)
	if err != nil {
		return nil, fmt.Errorf("consultar responsable: %w", err)
	}
	if !ok {
		return nil, domain.NewValidationError("el responsable no existe")
	}
	return country, nil
}

// checkClassification revalida categoría y proveedor cuando vienen informados.
func checkClassification(ctx context.Context, refs repository.ReferenceRepository, categoryID, supplierID string) error {
	if categoryID != "" {
		ok, err := refs.CategoryExists(ctx, categoryID)
		if err != nil {
			return fmt.Errorf("consultar categoría: %w", err)
		}
		if !ok {
			return domain.NewValidationError("la categoría no existe")
		}
	}
	if supplierID != "" {
		ok, err := refs.SupplierExists(ctx, supplierID)
		if err != nil {
			return fmt.Errorf("consultar proveedor: %w", err)
		}
		if !ok {
			return domain.NewValidationError("el proveedor no existe")
		}
	}
	return nil
}
