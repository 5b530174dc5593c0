package entity

// Category clasificación de muestras.
type Category struct {
	ID   string
	Name string
}

// Supplier proveedor de la muestra.
type Supplier struct {
	ID   string
	Name string
}
