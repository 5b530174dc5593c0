package entity

// Roles válidos para User.
const (
	RoleAdmin      = "ADMIN"
	RoleUser       = "USER"
	RoleCommercial = "COMMERCIAL"
)

// ValidRole indica si el rol es reconocido.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleUser || r == RoleCommercial
}

// Caller identidad del usuario que ejecuta una operación (viene del token).
type Caller struct {
	UserID     string
	Role       string
	CountryIDs []string // países asignados (solo relevantes para USER)
}
