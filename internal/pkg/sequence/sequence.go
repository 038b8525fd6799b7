// Package sequence gera identificadores sequenciais legíveis (ID_00001, DAT-001).
package sequence

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Next calcula o próximo identificador: remove os caracteres não numéricos de cada
// identificador existente, toma o maior valor (zero quando não há nenhum), soma um
// e completa com zeros à esquerda até width dígitos.
//
// A chamada não é atômica: quem chama deve segurar o lock do repositório dono da coleção.
func Next(prefix string, existing []string, width int) string {
	max := 0
	for _, id := range existing {
		if n := Numeric(id); n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%0*d", prefix, width, max+1)
}

// Numeric extrai o valor numérico de um identificador. Retorna zero quando não há dígitos.
func Numeric(id string) int {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, id)
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}
