package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashEVerificarSenha(t *testing.T) {
	hash, err := HashSenha("senha-secreta")
	require.NoError(t, err)
	assert.NotEqual(t, "senha-secreta", hash)

	assert.True(t, VerificarSenha(hash, "senha-secreta"))
	assert.False(t, VerificarSenha(hash, "outra-senha"))
}

func TestHashSenhaGeraHashesDiferentes(t *testing.T) {
	a, err := HashSenha("senha-secreta")
	require.NoError(t, err)
	b, err := HashSenha("senha-secreta")
	require.NoError(t, err)

	// O salt embutido muda a cada geração; ambos continuam verificáveis.
	assert.NotEqual(t, a, b)
	assert.True(t, VerificarSenha(a, "senha-secreta"))
	assert.True(t, VerificarSenha(b, "senha-secreta"))
}

func TestVerificarSenhaComHashInvalido(t *testing.T) {
	assert.False(t, VerificarSenha("nao-e-um-hash-bcrypt", "senha"))
}
