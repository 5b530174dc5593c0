package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Muestras-api/internal/domain/codegen"
	"github.com/jhoicas/Muestras-api/internal/domain/repository"
)

// nextCode genera <prefijo><DD><MM><YY><NNN> reservando el correlativo en la transacción actual.
// Para muestras el prefijo es el código del país; para traslados un prefijo fijo.
func nextCode(ctx context.Context, seq repository.CodeSequenceRepository, kind repository.CodeKind, prefix string, now time.Time) (string, error) {
	if strings.TrimSpace(prefix) == "" {
		return "", fmt.Errorf("generar código %s: prefijo vacío", kind)
	}
	stem := codegen.Stem(prefix, now)
	n, err := seq.Next(ctx, kind, stem)
	if err != nil {
		return "", fmt.Errorf("generar código %s: %w", kind, err)
	}
	return codegen.Format(stem, n), nil
}
