package jwt_test

import (
	"testing"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Documentos-api/pkg/jwt"
)

const (
	secret = "test-secret-key-for-unit-tests"
	userID = "00000000-0000-0000-0000-000000000001"
	issuer = "documentos-api-test"
)

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, userID, "bodeguero", false, issuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID, claims.Subject)
	assert.Equal(t, "bodeguero", claims.Role)
	assert.False(t, claims.IsAdmin)
	assert.Equal(t, issuer, claims.Issuer)
}

func TestGenerateAndParse_Admin(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, userID, "admin", true, issuer, 60)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, userID, "admin", false, issuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(secret, tok)
	assert.ErrorIs(t, err, gojwt.ErrTokenExpired)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, userID, "admin", false, issuer, 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.ErrorIs(t, err, gojwt.ErrTokenSignatureInvalid)
}

func TestSecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", userID, "admin", false, issuer, 60)
	assert.ErrorIs(t, err, pkgjwt.ErrEmptySecret)

	_, err = pkgjwt.Parse("", "x.y.z")
	assert.ErrorIs(t, err, pkgjwt.ErrEmptySecret)
}

func TestParse_RechazaAlgNone(t *testing.T) {
	tok := gojwt.NewWithClaims(gojwt.SigningMethodNone, pkgjwt.Claims{UserID: userID, Role: "admin", IsAdmin: true})
	s, err := tok.SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(secret, s)
	assert.Error(t, err)
}
