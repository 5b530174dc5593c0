package entity

// Country país donde se ubican las muestras. Code es el prefijo de los códigos de muestra.
type Country struct {
	ID   string
	Code string
	Name string
}

// Responsible persona responsable de la custodia de una muestra.
type Responsible struct {
	ID   string
	Name string
}
