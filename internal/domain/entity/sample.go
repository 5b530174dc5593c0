package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida válidas para el peso de una muestra.
const (
	UnitKG = "kg"
	UnitG  = "g"
	UnitMG = "mg"
)

// ValidUnit indica si la unidad de medida es aceptada.
func ValidUnit(u string) bool {
	switch u {
	case UnitKG, UnitG, UnitMG:
		return true
	}
	return false
}

// Sample representa una muestra física (lote de material) ubicada en un país/bodega/ubicación.
// Quantity solo cambia a través del ledger de movimientos.
type Sample struct {
	ID            string
	Code          string // generado: <país><DD><MM><YY><NNN>
	Material      string
	Lot           string
	Quantity      int
	UnitWeight    decimal.Decimal
	Unit          string // kg, g, mg
	TotalWeight   decimal.Decimal
	ExpiryDate    *time.Time
	Comments      string
	RegisteredAt  time.Time
	CountryID     string
	CategoryID    string
	SupplierID    string
	WarehouseID   string
	LocationID    string
	ResponsibleID string
}

// SampleChangeset actualización parcial de atributos de una muestra.
// Cantidad, país y código no son modificables por esta vía.
type SampleChangeset struct {
	Material      *string
	Lot           *string
	UnitWeight    *decimal.Decimal
	Unit          *string
	ExpiryDate    *time.Time
	ClearExpiry   bool
	Comments      *string
	CategoryID    *string
	SupplierID    *string
	WarehouseID   *string
	LocationID    *string
	ResponsibleID *string
}

// IsEmpty indica si el changeset no modifica ningún campo.
func (c SampleChangeset) IsEmpty() bool {
	return c.Material == nil && c.Lot == nil && c.UnitWeight == nil && c.Unit == nil &&
		c.ExpiryDate == nil && !c.ClearExpiry && c.Comments == nil && c.CategoryID == nil &&
		c.SupplierID == nil && c.WarehouseID == nil && c.LocationID == nil && c.ResponsibleID == nil
}

// Apply aplica el changeset sobre una copia de la muestra.
func (c SampleChangeset) Apply(s Sample) Sample {
	if c.Material != nil {
		s.Material = *c.Material
	}
	if c.Lot != nil {
		s.Lot = *c.Lot
	}
	if c.UnitWeight != nil {
		s.UnitWeight = *c.UnitWeight
	}
	if c.Unit != nil {
		s.Unit = *c.Unit
	}
	if c.ClearExpiry {
		s.ExpiryDate = nil
	} else if c.ExpiryDate != nil {
		d := *c.ExpiryDate
		s.ExpiryDate = &d
	}
	if c.Comments != nil {
		s.Comments = *c.Comments
	}
	if c.CategoryID != nil {
		s.CategoryID = *c.CategoryID
	}
	if c.SupplierID != nil {
		s.SupplierID = *c.SupplierID
	}
	if c.WarehouseID != nil {
		s.WarehouseID = *c.WarehouseID
	}
	if c.LocationID != nil {
		s.LocationID = *c.LocationID
	}
	if c.ResponsibleID != nil {
		s.ResponsibleID = *c.ResponsibleID
	}
	return s
}
