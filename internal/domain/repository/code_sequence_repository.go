package repository

import "context"

// CodeKind tabla cuyos códigos comparten la secuencia.
type CodeKind string

const (
	CodeKindSample   CodeKind = "muestras"
	CodeKindTransfer CodeKind = "traslados"
)

// CodeSequenceRepository secuencia atómica por stem (<prefijo><DD><MM><YY>).
// Debe ejecutarse dentro de la misma transacción que el INSERT que usa el código.
type CodeSequenceRepository interface {
	// Next devuelve el siguiente correlativo (1-based) del stem y lo deja reservado.
	Next(ctx context.Context, kind CodeKind, stem string) (int, error)
}
