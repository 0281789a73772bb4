package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/mrp-api/pkg/jwt"
)

const (
	secret = "test-secret"
	userID = "00000000-0000-0000-0000-000000000001"
	issuer = "mrp-api-test"
)

func TestGenerateReset_NoSirveComoAcceso(t *testing.T) {
	tok, err := pkgjwt.GenerateReset(secret, userID, issuer, 15)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err, "un token de recuperación no debe autenticar peticiones")

	got, err := pkgjwt.ParseReset(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestParseReset_RechazaTokenDeAcceso(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, userID, "Operator", issuer, 60)
	require.NoError(t, err)

	_, err = pkgjwt.ParseReset(secret, tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", userID, "Operator", issuer, 60)
	assert.Error(t, err)
}
