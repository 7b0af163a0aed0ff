package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("segredo123")
	require.NoError(t, err)
	assert.NotEqual(t, "segredo123", hash)

	assert.True(t, CheckPassword(hash, "segredo123"))
	assert.False(t, CheckPassword(hash, "errada"))
	assert.False(t, CheckPassword("not-a-hash", "segredo123"))
}

func TestNewSessionToken(t *testing.T) {
	a := NewSessionToken()
	b := NewSessionToken()

	assert.Len(t, a, 48)
	assert.NotEqual(t, a, b)
}

func TestValidateSignup(t *testing.T) {
	assert.Equal(t, "", ValidateSignup("Maria", "maria@example.com", "123"))
	assert.Equal(t, "Por favor, preencha todos os campos.", ValidateSignup("", "maria@example.com", "123"))
	assert.Equal(t, "Por favor, preencha todos os campos.", ValidateSignup("Maria", "maria@example.com", ""))
	assert.Equal(t, "E-mail inválido.", ValidateSignup("Maria", "maria.example.com", "123"))
}

func TestValidateLogin(t *testing.T) {
	assert.Equal(t, "", ValidateLogin("maria@example.com", "123"))
	assert.Equal(t, "Por favor, preencha e-mail e senha.", ValidateLogin("", "123"))
	assert.Equal(t, "Por favor, preencha e-mail e senha.", ValidateLogin("maria@example.com", ""))
}
