// Package migrations contiene el esquema versionado (goose) embebido en el binario.
package migrations

import "embed"

// FS archivos SQL de migración, aplicados con goose desde cmd/migrate.
//
//go:embed *.sql
var FS embed.FS
