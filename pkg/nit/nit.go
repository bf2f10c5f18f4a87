// Package nit normaliza identificaciones tributarias colombianas (NIT y cédula).
package nit

import (
	"errors"
	"fmt"
	"unicode"
)

// ErrInvalid identificación vacía, con longitud imposible o dígito de verificación errado.
var ErrInvalid = errors.New("nit inválido")

// pesos módulo 11 aplicados a los 9 dígitos base, de izquierda a derecha.
var weights = [9]int{41, 37, 29, 23, 19, 17, 13, 7, 3}

// Normalize deja solo dígitos y, para un NIT, el guion del dígito de verificación.
//   - 9 dígitos: NIT sin DV, se calcula y se agrega ("900123456" → "900123456-8").
//   - 10 dígitos: NIT con DV, se valida.
//   - 5 a 8 dígitos: cédula, se devuelve sin puntos.
func Normalize(taxID string) (string, error) {
	digits := extractDigits(taxID)
	switch n := len(digits); {
	case n == 9:
		return string(digits) + "-" + string(CheckDigit(digits)), nil
	case n == 10:
		dv := CheckDigit(digits[:9])
		if digits[9] != dv {
			return "", fmt.Errorf("%w: dígito de verificación esperado %c, recibido %c", ErrInvalid, dv, digits[9])
		}
		return string(digits[:9]) + "-" + string(dv), nil
	case n >= 5 && n <= 8:
		return string(digits), nil
	default:
		return "", fmt.Errorf("%w: %d dígitos", ErrInvalid, n)
	}
}

// CheckDigit dígito de verificación de los 9 dígitos base.
func CheckDigit(base []byte) byte {
	var sum int
	for i, d := range base[:9] {
		sum += int(d-'0') * weights[i]
	}
	r := sum % 11
	if r == 0 || r == 1 {
		return byte('0' + r)
	}
	return byte('0' + (11 - r))
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if r < 128 && unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
