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

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `mv.id, mv.secuencia, mv.muestra_id, mv.tipo_movimiento, mv.cantidad_movida,
	mv.cantidad_anterior, mv.cantidad_nueva, mv.motivo, mv.comentarios, mv.fecha_movimiento,
	mv.usuario_id, mv.traslado_id, mv.codigo_traslado`

// MovementRepo kardex sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

func scanMovement(row rowScanner) (*entity.Movement, error) {
	var m entity.Movement
	var transferID *string
	if err := row.Scan(
		&m.ID, &m.Seq, &m.SampleID, &m.Type, &m.QuantityMoved,
		&m.QuantityBefore, &m.QuantityAfter, &m.Reason, &m.Comments, &m.Date,
		&m.UserID, &transferID, &m.TransferCode,
	); err != nil {
		return nil, err
	}
	m.TransferID = fromNullable(transferID)
	return &m, nil
}

// Create persiste un movimiento; la secuencia la asigna la base (BIGSERIAL).
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movimientos (id, muestra_id, tipo_movimiento, cantidad_movida, cantidad_anterior,
			cantidad_nueva, motivo, comentarios, fecha_movimiento, usuario_id, traslado_id, codigo_traslado)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING secuencia`
	err := r.q.QueryRow(ctx, query,
		m.ID, m.SampleID, m.Type, m.QuantityMoved, m.QuantityBefore,
		m.QuantityAfter, m.Reason, m.Comments, m.Date, m.UserID, nullable(m.TransferID), m.TransferCode,
	).Scan(&m.Seq)
	if err != nil {
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	if uuid.Validate(id) != nil {
		return nil, nil
	}
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM movimientos mv WHERE mv.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movimiento: %w", err)
	}
	return m, nil
}

// Delete elimina el registro del movimiento.
func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM movimientos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movimiento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// LatestBySample devuelve el último movimiento de la muestra (mayor secuencia).
func (r *MovementRepo) LatestBySample(ctx context.Context, sampleID string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movimientos mv
		WHERE mv.muestra_id = $1 ORDER BY mv.secuencia DESC LIMIT 1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, sampleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ultimo movimiento: %w", err)
	}
	return m, nil
}

// ListBySample devuelve el kardex completo de una muestra en orden de ledger.
func (r *MovementRepo) ListBySample(ctx context.Context, sampleID string) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movimientos mv
		WHERE mv.muestra_id = $1 ORDER BY mv.secuencia ASC`
	rows, err := r.q.Query(ctx, query, sampleID)
	if err != nil {
		return nil, fmt.Errorf("kardex muestra: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// List kardex general. El alcance se aplica por el país de la muestra.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter, scope access.Scope) ([]*entity.Movement, int, error) {
	w := &whereBuilder{}
	w.addIf(f.SampleID, "mv.muestra_id::text = %s")
	w.addIf(f.Type, "mv.tipo_movimiento = %s")
	if f.From != nil {
		w.add("mv.fecha_movimiento >= %s", *f.From)
	}
	if f.To != nil {
		w.add("mv.fecha_movimiento <= %s", *f.To)
	}
	w.scope(scope, "m.pais_id")

	from := ` FROM movimientos mv JOIN muestras m ON m.id = mv.muestra_id`
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*)`+from+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movimientos: %w", err)
	}
	query := `SELECT ` + movementColumns + from + w.sql() + w.page("mv.secuencia DESC", f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan movimiento: %w", err)
		}
		list = append(list, m)
	}
	return list, total, rows.Err()
}
