// Package access define la regla de visibilidad por país aplicada a muestras,
// movimientos y traslados. Es lógica pura: no consulta la base de datos.
package access

import "github.com/jhoicas/Muestras-api/internal/domain/entity"

// Scope alcance de visibilidad de un usuario: sin restricción o limitado a un conjunto de países.
type Scope struct {
	unrestricted bool
	countries    map[string]struct{}
	admin        bool
}

// ScopeFor construye el alcance a partir de la identidad del usuario.
// ADMIN y COMMERCIAL ven todo; USER solo sus países asignados.
func ScopeFor(c entity.Caller) Scope {
	s := Scope{admin: c.Role == entity.RoleAdmin}
	switch c.Role {
	case entity.RoleAdmin, entity.RoleCommercial:
		s.unrestricted = true
		return s
	}
	s.countries = make(map[string]struct{}, len(c.CountryIDs))
	for _, id := range c.CountryIDs {
		if id != "" {
			s.countries[id] = struct{}{}
		}
	}
	return s
}

// Unrestricted devuelve un alcance sin filtro (procesos internos y pruebas).
func Unrestricted() Scope {
	return Scope{unrestricted: true}
}

// IsUnrestricted indica si el alcance no filtra por país.
func (s Scope) IsUnrestricted() bool { return s.unrestricted }

// IsAdmin indica si el alcance pertenece a un administrador.
func (s Scope) IsAdmin() bool { return s.admin }

// CountryIDs devuelve los países permitidos (vacío si es sin restricción).
func (s Scope) CountryIDs() []string {
	ids := make([]string, 0, len(s.countries))
	for id := range s.countries {
		ids = append(ids, id)
	}
	return ids
}

// AllowsCountry indica si una muestra/movimiento del país es visible o modificable.
func (s Scope) AllowsCountry(countryID string) bool {
	if s.unrestricted {
		return true
	}
	_, ok := s.countries[countryID]
	return ok
}

// AllowsTransfer un traslado es visible si el país de origen O el de destino está permitido.
func (s Scope) AllowsTransfer(originCountryID, destinationCountryID string) bool {
	return s.AllowsCountry(originCountryID) || s.AllowsCountry(destinationCountryID)
}
