package utils

import (
	"strings"
	"unicode"
)

// FormatarNome normaliza um nome para Title Case: espaços extras removidos,
// primeira letra de cada palavra maiúscula e o restante minúsculo.
// Entradas vazias ou só de espaços são devolvidas como estão.
func FormatarNome(nome string) string {
	if strings.TrimSpace(nome) == "" {
		return nome
	}

	palavras := strings.Fields(strings.ToLower(nome))
	for i, palavra := range palavras {
		runes := []rune(palavra)
		runes[0] = unicode.ToUpper(runes[0])
		palavras[i] = string(runes)
	}

	return strings.Join(palavras, " ")
}
