package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de fechas (vencimiento, filtros) en la API.
const DateLayout = "2006-01-02"

// RegisterSampleRequest body para POST /api/muestras.
type RegisterSampleRequest struct {
	Material      string          `json:"material"`
	Lot           string          `json:"lote"`
	Quantity      int             `json:"cantidad"`
	UnitWeight    decimal.Decimal `json:"peso_unitario"`
	Unit          string          `json:"unidad_medida"`
	ExpiryDate    string          `json:"fecha_vencimiento,omitempty"`
	Comments      string          `json:"comentarios,omitempty"`
	CountryID     string          `json:"pais_id"`
	CategoryID    string          `json:"categoria_id,omitempty"`
	SupplierID    string          `json:"proveedor_id,omitempty"`
	WarehouseID   string          `json:"bodega_id"`
	LocationID    string          `json:"ubicacion_id"`
	ResponsibleID string          `json:"responsable_id"`
}

// UpdateSampleRequest body para PATCH /api/muestras/:id (solo campos presentes).
// fecha_vencimiento = "" elimina la fecha.
type UpdateSampleRequest struct {
	Material      *string          `json:"material,omitempty"`
	Lot           *string          `json:"lote,omitempty"`
	UnitWeight    *decimal.Decimal `json:"peso_unitario,omitempty"`
	Unit          *string          `json:"unidad_medida,omitempty"`
	ExpiryDate    *string          `json:"fecha_vencimiento,omitempty"`
	Comments      *string          `json:"comentarios,omitempty"`
	CategoryID    *string          `json:"categoria_id,omitempty"`
	SupplierID    *string          `json:"proveedor_id,omitempty"`
	WarehouseID   *string          `json:"bodega_id,omitempty"`
	LocationID    *string          `json:"ubicacion_id,omitempty"`
	ResponsibleID *string          `json:"responsable_id,omitempty"`
}

// SampleListQuery filtros de GET /api/muestras.
type SampleListQuery struct {
	PageRequest
	CountryID   string `query:"pais_id"`
	WarehouseID string `query:"bodega_id"`
	Search      string `query:"q"`
}

// SampleResponse representación pública de una muestra.
type SampleResponse struct {
	ID            string          `json:"id"`
	Code          string          `json:"codigo"`
	Material      string          `json:"material"`
	Lot           string          `json:"lote"`
	Quantity      int             `json:"cantidad"`
	UnitWeight    decimal.Decimal `json:"peso_unitario"`
	Unit          string          `json:"unidad_medida"`
	TotalWeight   decimal.Decimal `json:"peso_total"`
	ExpiryDate    *string         `json:"fecha_vencimiento,omitempty"`
	Comments      string          `json:"comentarios,omitempty"`
	RegisteredAt  time.Time       `json:"fecha_registro"`
	CountryID     string          `json:"pais_id"`
	CategoryID    string          `json:"categoria_id,omitempty"`
	SupplierID    string          `json:"proveedor_id,omitempty"`
	WarehouseID   string          `json:"bodega_id"`
	LocationID    string          `json:"ubicacion_id"`
	ResponsibleID string          `json:"responsable_id"`
}
