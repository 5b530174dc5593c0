package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Muestras-api/internal/domain/entity"
	"github.com/jhoicas/Muestras-api/internal/domain/repository"
)

var _ repository.ReferenceRepository = (*ReferenceRepo)(nil)

// ReferenceRepo lectura de datos maestros (países, bodegas, ubicaciones, etc.).
type ReferenceRepo struct {
	q Querier
}

// NewReferenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReferenceRepository(q Querier) *ReferenceRepo {
	return &ReferenceRepo{q: q}
}

// GetCountry obtiene un país por ID.
func (r *ReferenceRepo) GetCountry(ctx context.Context, id string) (*entity.Country, error) {
	if uuid.Validate(id) != nil {
		return nil, nil
	}
	var c entity.Country
	err := r.q.QueryRow(ctx, `SELECT id, codigo, nombre FROM paises WHERE id = $1`, id).
		Scan(&c.ID, &c.Code, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pais: %w", err)
	}
	return &c, nil
}

// GetWarehouse obtiene una bodega por ID.
func (r *ReferenceRepo) GetWarehouse(ctx context.Context, id string) (*entity.Warehouse, error) {
	if uuid.Validate(id) != nil {
		return nil, nil
	}
	var w entity.Warehouse
	err := r.q.QueryRow(ctx, `SELECT id, pais_id, nombre FROM bodegas WHERE id = $1`, id).
		Scan(&w.ID, &w.CountryID, &w.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bodega: %w", err)
	}
	return &w, nil
}

// GetLocation obtiene una ubicación por ID.
func (r *ReferenceRepo) GetLocation(ctx context.Context, id string) (*entity.Location, error) {
	if uuid.Validate(id) != nil {
		return nil, nil
	}
	var l entity.Location
	err := r.q.QueryRow(ctx, `SELECT id, bodega_id, nombre FROM ubicaciones WHERE id = $1`, id).
		Scan(&l.ID, &l.WarehouseID, &l.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ubicacion: %w", err)
	}
	return &l, nil
}

// CategoryExists indica si la categoría existe.
func (r *ReferenceRepo) CategoryExists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, "categorias", id)
}

// SupplierExists indica si el proveedor existe.
func (r *ReferenceRepo) SupplierExists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, "proveedores", id)
}

// ResponsibleExists indica si el responsable existe.
func (r *ReferenceRepo) ResponsibleExists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, "responsables", id)
}

// exists table siempre es una constante de este archivo.
func (r *ReferenceRepo) exists(ctx context.Context, table, id string) (bool, error) {
	if uuid.Validate(id) != nil {
		return false, nil
	}
	var ok bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM `+table+` WHERE id = $1)`, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("exists %s: %w", table, err)
	}
	return ok, nil
}
