package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestGenerateParse(t *testing.T) {
	token, err := Generate(secret, "user-1", "USER", []string{"co", "pe"}, "muestras-api", 5)
	require.NoError(t, err)

	claims, err := Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "USER", claims.Role)
	assert.Equal(t, []string{"co", "pe"}, claims.CountryIDs)
	assert.Equal(t, "muestras-api", claims.Issuer)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := Generate(secret, "user-1", "ADMIN", nil, "", 5)
	require.NoError(t, err)

	_, err = Parse("otro-secret", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := Generate(secret, "user-1", "ADMIN", nil, "", -1)
	require.NoError(t, err)

	_, err = Parse(secret, token)
	assert.ErrorIs(t, err, gojwt.ErrTokenExpired)
}

func TestParse_AlgoritmoNone(t *testing.T) {
	claims := Claims{
		RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           "user-1",
		Role:             "ADMIN",
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = Parse(secret, token)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := Generate("", "user-1", "ADMIN", nil, "", 5)
	assert.Error(t, err)
	_, err = Parse("", "x.y.z")
	assert.Error(t, err)
}
