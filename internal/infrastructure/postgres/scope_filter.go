package postgres

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Muestras-api/internal/domain/access"
)

// whereBuilder arma cláusulas WHERE con parámetros posicionales ($1, $2, ...).
type whereBuilder struct {
	conds []string
	args  []any
}

// arg registra un valor y devuelve su placeholder.
func (w *whereBuilder) arg(v any) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

// add agrega una condición; cada %s del formato recibe el placeholder de un valor de args.
func (w *whereBuilder) add(format string, args ...any) {
	ph := make([]any, len(args))
	for i, a := range args {
		ph[i] = w.arg(a)
	}
	w.conds = append(w.conds, fmt.Sprintf(format, ph...))
}

// addIf agrega la condición solo si v no está vacío.
func (w *whereBuilder) addIf(v string, format string) {
	if v != "" {
		w.add(format, v)
	}
}

// scope restringe el listado a los países del alcance. Con varias columnas basta que
// una de ellas pertenezca al conjunto (traslados: país de origen o de destino).
// Un alcance sin restricción no agrega condición.
func (w *whereBuilder) scope(s access.Scope, countryColumns ...string) {
	if s.IsUnrestricted() || len(countryColumns) == 0 {
		return
	}
	ph := w.arg(s.CountryIDs())
	parts := make([]string, len(countryColumns))
	for i, col := range countryColumns {
		parts[i] = col + "::text = ANY(" + ph + "::text[])"
	}
	w.conds = append(w.conds, "("+strings.Join(parts, " OR ")+")")
}

func (w *whereBuilder) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page agrega ORDER BY / LIMIT / OFFSET. orderBy debe ser una constante del repositorio.
func (w *whereBuilder) page(orderBy string, limit, offset int) string {
	return fmt.Sprintf(" ORDER BY %s LIMIT %s OFFSET %s", orderBy, w.arg(limit), w.arg(offset))
}

// setBuilder arma la lista SET de un UPDATE parcial. Solo acepta columnas de su allow-list.
type setBuilder struct {
	allowed map[string]struct{}
	sets    []string
	args    []any
}

func newSetBuilder(columns ...string) *setBuilder {
	b := &setBuilder{allowed: make(map[string]struct{}, len(columns))}
	for _, c := range columns {
		b.allowed[c] = struct{}{}
	}
	return b
}

func (b *setBuilder) set(column string, v any) {
	if _, ok := b.allowed[column]; !ok {
		panic("postgres: columna no permitida en UPDATE: " + column)
	}
	b.args = append(b.args, v)
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

func (b *setBuilder) empty() bool { return len(b.sets) == 0 }

// update devuelve el UPDATE completo con la llave como último parámetro.
func (b *setBuilder) update(table, keyColumn string, key any) (string, []any) {
	args := append(append([]any{}, b.args...), key)
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
		table, strings.Join(b.sets, ", "), keyColumn, len(args)), args
}
