package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse_ConRole(t *testing.T) {
	sub := Subject{UserID: "u1", CompanyID: "c1", Role: "produccion"}
	tok, err := Generate(testSecret, sub, "produccion-api-test", time.Hour)
	require.NoError(t, err)

	got, err := Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, sub, got)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := Generate(testSecret, Subject{UserID: "u1"}, "x", -time.Minute)
	require.NoError(t, err)

	_, err = Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := Generate(testSecret, Subject{UserID: "u1"}, "x", time.Hour)
	require.NoError(t, err)

	_, err = Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := Generate("", Subject{}, "x", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)
	_, err = Parse("", "abc")
	assert.ErrorIs(t, err, ErrEmptySecret)
}
