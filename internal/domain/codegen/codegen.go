// Package codegen arma los códigos legibles de muestras y traslados:
// <prefijo><DD><MM><YY><correlativo de 3 dígitos>.
package codegen

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultTransferPrefix prefijo fijo de los códigos de traslado.
const DefaultTransferPrefix = "TR"

var upper = cases.Upper(language.Und)

// Stem devuelve el prefijo del día: <PREFIJO><DD><MM><YY>.
func Stem(prefix string, date time.Time) string {
	return upper.String(strings.TrimSpace(prefix)) + date.Format("020106")
}

// Format concatena el stem con el correlativo en 3 dígitos.
// Más de 999 códigos en un día desbordan el ancho (límite aceptado).
func Format(stem string, correlative int) string {
	return fmt.Sprintf("%s%03d", stem, correlative)
}

// Correlative extrae el correlativo de un código que comparte el stem dado.
func Correlative(stem, code string) (int, bool) {
	if !strings.HasPrefix(code, stem) {
		return 0, false
	}
	n, err := strconv.Atoi(code[len(stem):])
	if err != nil {
		return 0, false
	}
	return n, true
}
