package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Muestras-api/internal/domain/repository"
)

var _ repository.CodeSequenceRepository = (*CodeSequenceRepo)(nil)

// Tablas cuyos códigos se numeran; la clave es también el valor de secuencias_codigo.tabla.
var codeTables = map[repository.CodeKind]string{
	repository.CodeKindSample:   "muestras",
	repository.CodeKindTransfer: "traslados",
}

// CodeSequenceRepo correlativo diario atómico (INSERT ... ON CONFLICT DO UPDATE ... RETURNING).
// La fila del stem queda bloqueada hasta el fin de la transacción: dos registros concurrentes
// del mismo país y día se serializan aquí y obtienen correlativos distintos.
type CodeSequenceRepo struct {
	q Querier
}

// NewCodeSequenceRepository construye el adaptador. Debe recibir la tx del INSERT que usa el código.
func NewCodeSequenceRepository(q Querier) *CodeSequenceRepo {
	return &CodeSequenceRepo{q: q}
}

// Next devuelve max(códigos existentes con el stem, último reservado) + 1.
func (r *CodeSequenceRepo) Next(ctx context.Context, kind repository.CodeKind, stem string) (int, error) {
	table, ok := codeTables[kind]
	if !ok {
		return 0, fmt.Errorf("secuencia: tipo de código desconocido %q", kind)
	}
	query := fmt.Sprintf(`
		INSERT INTO secuencias_codigo (tabla, prefijo, ultimo)
		VALUES ($1, $2::text, (SELECT count(*) FROM %s WHERE left(codigo, length($2::text)) = $2::text) + 1)
		ON CONFLICT (tabla, prefijo) DO UPDATE
		SET ultimo = GREATEST(secuencias_codigo.ultimo, EXCLUDED.ultimo - 1) + 1
		RETURNING ultimo`, table)
	var n int
	if err := r.q.QueryRow(ctx, query, table, stem).Scan(&n); err != nil {
		return 0, fmt.Errorf("siguiente correlativo %s: %w", stem, err)
	}
	return n, nil
}
