package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrValidation   = errors.New("entrada inválida")
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	// ErrCodeConflict: otro proceso tomó el mismo código generado (restricción única). Reintentable.
	ErrCodeConflict = errors.New("conflicto al generar el código, reintente la operación")
)

// ValidationError error de regla de negocio con mensaje legible para el cliente.
// errors.Is(err, ErrValidation) es verdadero para cualquier *ValidationError.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Unwrap permite clasificar el error como ErrValidation.
func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError crea un error de validación con el mensaje dado.
func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

// ErrInsufficientStock una SALIDA dejaría la cantidad de la muestra en negativo.
var ErrInsufficientStock = &ValidationError{Msg: "stock insuficiente para este movimiento"}

// ValidationMessage devuelve el mensaje de un *ValidationError envuelto en err, o "" si no hay.
func ValidationMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Msg
	}
	return ""
}
