package entity

import "time"

// Tipos de movimiento del kardex.
const (
	MovementTypeEntrada = "ENTRADA" // aumenta la cantidad
	MovementTypeSalida  = "SALIDA"  // disminuye la cantidad
)

// Movement registro inmutable del kardex de una muestra.
// QuantityAfter = QuantityBefore ± QuantityMoved según Type, nunca negativo.
type Movement struct {
	ID             string
	Seq            int64 // orden total del ledger
	SampleID       string
	Type           string
	QuantityMoved  int
	QuantityBefore int
	QuantityAfter  int
	Reason         string
	Comments       string
	Date           time.Time
	UserID         string
	TransferID     string // vacío si no proviene de un traslado o si el traslado fue eliminado
	TransferCode   string // código del traslado de origen; se conserva aunque se elimine el traslado
}

// FromTransfer indica si el movimiento lo generó un traslado, exista o no el registro del traslado.
func (m Movement) FromTransfer() bool {
	return m.TransferID != "" || m.TransferCode != ""
}

// Delta devuelve el cambio con signo que el movimiento aplica a la cantidad.
func (m Movement) Delta() int {
	if m.Type == MovementTypeSalida {
		return -m.QuantityMoved
	}
	return m.QuantityMoved
}
