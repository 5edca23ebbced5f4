package utils

import "golang.org/x/crypto/bcrypt"

// HashSenha gera um hash bcrypt para a senha informada. É com ele que se
// produz o valor esperado em AUTH_PASSWORD_HASH.
func HashSenha(senha string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	return string(hash), err
}

// VerificarSenha compara hash bcrypt com a senha em texto puro.
func VerificarSenha(hash, senha string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(senha))
	return err == nil
}
