package entity

// Warehouse representa una bodega dentro de un país.
type Warehouse struct {
	ID        string
	CountryID string
	Name      string
}

// Location representa una ubicación física dentro de una bodega.
type Location struct {
	ID          string
	WarehouseID string
	Name        string
}
