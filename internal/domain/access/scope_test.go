package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Muestras-api/internal/domain/access"
	"github.com/jhoicas/Muestras-api/internal/domain/entity"
)

func TestScopeFor_AdminYComercialSinRestriccion(t *testing.T) {
	for _, role := range []string{entity.RoleAdmin, entity.RoleCommercial} {
		s := access.ScopeFor(entity.Caller{UserID: "u1", Role: role})
		assert.True(t, s.IsUnrestricted(), role)
		assert.True(t, s.AllowsCountry("cualquiera"), role)
		assert.Empty(t, s.CountryIDs(), role)
	}
	assert.True(t, access.ScopeFor(entity.Caller{Role: entity.RoleAdmin}).IsAdmin())
	assert.False(t, access.ScopeFor(entity.Caller{Role: entity.RoleCommercial}).IsAdmin())
}

func TestScopeFor_UserLimitadoASusPaises(t *testing.T) {
	s := access.ScopeFor(entity.Caller{UserID: "u2", Role: entity.RoleUser, CountryIDs: []string{"pe", "co"}})

	assert.False(t, s.IsUnrestricted())
	assert.True(t, s.AllowsCountry("pe"))
	assert.True(t, s.AllowsCountry("co"))
	assert.False(t, s.AllowsCountry("cl"))
	assert.ElementsMatch(t, []string{"pe", "co"}, s.CountryIDs())
}

func TestAllowsTransfer_OrigenODestino(t *testing.T) {
	s := access.ScopeFor(entity.Caller{Role: entity.RoleUser, CountryIDs: []string{"pe"}})

	assert.True(t, s.AllowsTransfer("pe", "cl"), "emisor ve su traslado")
	assert.True(t, s.AllowsTransfer("cl", "pe"), "receptor ve el traslado entrante")
	assert.False(t, s.AllowsTransfer("cl", "co"))
}

func TestScopeFor_UserSinPaisesNoVeNada(t *testing.T) {
	s := access.ScopeFor(entity.Caller{Role: entity.RoleUser})
	assert.False(t, s.AllowsCountry(""))
	assert.False(t, s.AllowsCountry("pe"))
}
