package engine

import "strings"

// Normalize remove espacos nas pontas e converte para minusculas.
// Toda comparacao do motor passa por aqui.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
