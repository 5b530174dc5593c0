package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Muestras-api/internal/domain"
	"github.com/jhoicas/Muestras-api/internal/domain/access"
	"github.com/jhoicas/Muestras-api/internal/domain/entity"
	"github.com/jhoicas/Muestras-api/internal/domain/repository"
)

var _ repository.SampleRepository = (*SampleRepo)(nil)

const sampleColumns = `m.id, m.codigo, m.material, m.lote, m.cantidad, m.peso_unitario, m.unidad_medida,
	m.peso_total, m.fecha_vencimiento, m.comentarios, m.fecha_registro, m.pais_id, m.categoria_id,
	m.proveedor_id, m.bodega_id, m.ubicacion_id, m.responsable_id`

// SampleRepo implementación de SampleRepository sobre PostgreSQL (usable con pool o tx).
type SampleRepo struct {
	q Querier
}

// NewSampleRepository construye el adaptador de muestras. Pasar pool o tx (Querier).
func NewSampleRepository(q Querier) *SampleRepo {
	return &SampleRepo{q: q}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSample(row rowScanner) (*entity.Sample, error) {
	var s entity.Sample
	var category, supplier *string
	if err := row.Scan(
		&s.ID, &s.Code, &s.Material, &s.Lot, &s.Quantity, &s.UnitWeight, &s.Unit,
		&s.TotalWeight, &s.ExpiryDate, &s.Comments, &s.RegisteredAt, &s.CountryID, &category,
		&supplier, &s.WarehouseID, &s.LocationID, &s.ResponsibleID,
	); err != nil {
		return nil, err
	}
	s.CategoryID = fromNullable(category)
	s.SupplierID = fromNullable(supplier)
	return &s, nil
}

// Create persiste una muestra. Un código repetido devuelve domain.ErrCodeConflict.
func (r *SampleRepo) Create(ctx context.Context, s *entity.Sample) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	query := `
		INSERT INTO muestras (id, codigo, material, lote, cantidad, peso_unitario, unidad_medida, peso_total,
			fecha_vencimiento, comentarios, fecha_registro, pais_id, categoria_id, proveedor_id,
			bodega_id, ubicacion_id, responsable_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Code, s.Material, s.Lot, s.Quantity, s.UnitWeight, s.Unit, s.TotalWeight,
		s.ExpiryDate, s.Comments, s.RegisteredAt, s.CountryID, nullable(s.CategoryID), nullable(s.SupplierID),
		s.WarehouseID, s.LocationID, s.ResponsibleID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return codeConflict(err)
		}
		return fmt.Errorf("insert muestra: %w", err)
	}
	return nil
}

// GetByID obtiene una muestra por ID.
func (r *SampleRepo) GetByID(ctx context.Context, id string) (*entity.Sample, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate obtiene la muestra y bloquea la fila para update (SELECT FOR UPDATE).
func (r *SampleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sample, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

func (r *SampleRepo) get(ctx context.Context, id, lock string) (*entity.Sample, error) {
	if uuid.Validate(id) != nil {
		return nil, nil
	}
	query := `SELECT ` + sampleColumns + ` FROM muestras m WHERE m.id = $1` + lock
	s, err := scanSample(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get muestra: %w", err)
	}
	return s, nil
}

// UpdateQuantity fija la cantidad de la muestra. Solo lo usa el kardex.
func (r *SampleRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	tag, err := r.q.Exec(ctx, `UPDATE muestras SET cantidad = $1 WHERE id = $2`, quantity, id)
	if err != nil {
		return fmt.Errorf("update cantidad: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Update aplica un changeset parcial. Cantidad, país y código no forman parte de la allow-list.
func (r *SampleRepo) Update(ctx context.Context, id string, c entity.SampleChangeset) error {
	b := newSetBuilder(
		"material", "lote", "peso_unitario", "unidad_medida", "fecha_vencimiento", "comentarios",
		"categoria_id", "proveedor_id", "bodega_id", "ubicacion_id", "responsable_id",
	)
	if c.Material != nil {
		b.set("material", *c.Material)
	}
	if c.Lot != nil {
		b.set("lote", *c.Lot)
	}
	if c.UnitWeight != nil {
		b.set("peso_unitario", *c.UnitWeight)
	}
	if c.Unit != nil {
		b.set("unidad_medida", *c.Unit)
	}
	if c.ClearExpiry {
		b.set("fecha_vencimiento", nil)
	} else if c.ExpiryDate != nil {
		b.set("fecha_vencimiento", *c.ExpiryDate)
	}
	if c.Comments != nil {
		b.set("comentarios", *c.Comments)
	}
	if c.CategoryID != nil {
		b.set("categoria_id", nullable(*c.CategoryID))
	}
	if c.SupplierID != nil {
		b.set("proveedor_id", nullable(*c.SupplierID))
	}
	if c.WarehouseID != nil {
		b.set("bodega_id", *c.WarehouseID)
	}
	if c.LocationID != nil {
		b.set("ubicacion_id", *c.LocationID)
	}
	if c.ResponsibleID != nil {
		b.set("responsable_id", *c.ResponsibleID)
	}
	if b.empty() {
		return nil
	}
	query, args := b.update("muestras", "id", id)
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update muestra: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista muestras dentro del alcance, con el total para paginar.
func (r *SampleRepo) List(ctx context.Context, f repository.SampleFilter, scope access.Scope) ([]*entity.Sample, int, error) {
	w := &whereBuilder{}
	w.addIf(f.CountryID, "m.pais_id::text = %s")
	w.addIf(f.WarehouseID, "m.bodega_id::text = %s")
	if f.Search != "" {
		w.add("(m.codigo ILIKE %[1]s OR m.material ILIKE %[1]s OR m.lote ILIKE %[1]s)", "%"+f.Search+"%")
	}
	w.scope(scope, "m.pais_id")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM muestras m`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count muestras: %w", err)
	}
	query := `SELECT ` + sampleColumns + ` FROM muestras m` + w.sql() + w.page("m.fecha_registro DESC, m.codigo", f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list muestras: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sample
	for rows.Next() {
		s, err := scanSample(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan muestra: %w", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}
