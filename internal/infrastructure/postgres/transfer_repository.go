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

var _ repository.TransferRepository = (*TransferRepo)(nil)

const transferColumns = `t.id, t.codigo, t.muestra_origen_id, t.muestra_destino_id, t.cantidad_trasladada,
	t.pais_destino_id, t.motivo, t.comentarios, t.estado, t.fecha_envio, t.fecha_recepcion,
	t.usuario_origen_id, t.usuario_destino_id, m.pais_id`

const transferFrom = ` FROM traslados t JOIN muestras m ON m.id = t.muestra_origen_id`

// TransferRepo traslados sobre PostgreSQL (usable con pool o tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

func scanTransfer(row rowScanner) (*entity.Transfer, error) {
	var t entity.Transfer
	var destSample, destUser *string
	if err := row.Scan(
		&t.ID, &t.Code, &t.OriginSampleID, &destSample, &t.Quantity,
		&t.DestinationCountryID, &t.Reason, &t.Comments, &t.State, &t.SentAt, &t.ReceivedAt,
		&t.OriginUserID, &destUser, &t.OriginCountryID,
	); err != nil {
		return nil, err
	}
	t.DestinationSampleID = fromNullable(destSample)
	t.DestinationUserID = fromNullable(destUser)
	return &t, nil
}

// Create persiste un traslado. Un código repetido devuelve domain.ErrCodeConflict.
func (r *TransferRepo) Create(ctx context.Context, t *entity.Transfer) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	query := `
		INSERT INTO traslados (id, codigo, muestra_origen_id, cantidad_trasladada, pais_destino_id,
			motivo, comentarios, estado, fecha_envio, usuario_origen_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Code, t.OriginSampleID, t.Quantity, t.DestinationCountryID,
		t.Reason, t.Comments, t.State, t.SentAt, t.OriginUserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return codeConflict(err)
		}
		return fmt.Errorf("insert traslado: %w", err)
	}
	return nil
}

// GetByID obtiene un traslado con el país de su muestra de origen.
func (r *TransferRepo) GetByID(ctx context.Context, id string) (*entity.Transfer, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate bloquea solo la fila del traslado (FOR UPDATE OF t).
func (r *TransferRepo) GetForUpdate(ctx context.Context, id string) (*entity.Transfer, error) {
	return r.get(ctx, id, " FOR UPDATE OF t")
}

func (r *TransferRepo) get(ctx context.Context, id, lock string) (*entity.Transfer, error) {
	if uuid.Validate(id) != nil {
		return nil, nil
	}
	t, err := scanTransfer(r.q.QueryRow(ctx, `SELECT `+transferColumns+transferFrom+` WHERE t.id = $1`+lock, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get traslado: %w", err)
	}
	return t, nil
}

// Resolve persiste la resolución del traslado. Solo actualiza si sigue ENVIADO.
func (r *TransferRepo) Resolve(ctx context.Context, t *entity.Transfer) error {
	query := `
		UPDATE traslados
		SET estado = $1, fecha_recepcion = $2, usuario_destino_id = $3, muestra_destino_id = $4, comentarios = $5
		WHERE id = $6 AND estado = 'ENVIADO'`
	tag, err := r.q.Exec(ctx, query,
		t.State, t.ReceivedAt, nullable(t.DestinationUserID), nullable(t.DestinationSampleID), t.Comments, t.ID,
	)
	if err != nil {
		return fmt.Errorf("resolver traslado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewValidationError("el traslado ya fue resuelto")
	}
	return nil
}

// Delete elimina el registro; los movimientos conservan su historial (traslado_id pasa a NULL, codigo_traslado se mantiene).
func (r *TransferRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM traslados WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete traslado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista traslados visibles: país de origen o de destino dentro del alcance.
func (r *TransferRepo) List(ctx context.Context, f repository.TransferFilter, scope access.Scope) ([]*entity.Transfer, int, error) {
	w := &whereBuilder{}
	w.addIf(f.State, "t.estado = %s")
	w.addIf(f.OriginSampleID, "t.muestra_origen_id::text = %s")
	w.scope(scope, "m.pais_id", "t.pais_destino_id")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*)`+transferFrom+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count traslados: %w", err)
	}
	query := `SELECT ` + transferColumns + transferFrom + w.sql() + w.page("t.fecha_envio DESC, t.codigo", f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list traslados: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan traslado: %w", err)
		}
		list = append(list, t)
	}
	return list, total, rows.Err()
}
