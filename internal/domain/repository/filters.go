package repository

import "time"

// SampleFilter filtros para listar muestras.
type SampleFilter struct {
	CountryID   string
	WarehouseID string
	Search      string // coincide en código, material o lote
	Limit       int
	Offset      int
}

// MovementFilter filtros para listar movimientos (kardex general).
type MovementFilter struct {
	SampleID string
	Type     string
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

// TransferFilter filtros para listar traslados.
type TransferFilter struct {
	State          string
	OriginSampleID string
	Limit          int
	Offset         int
}
