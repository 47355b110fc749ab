// Package taxid valida identificaciones tributarias colombianas (NIT con dígito de verificación).
package taxid

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalid identificación mal formada o con dígito de verificación incorrecto.
var ErrInvalid = errors.New("taxid: identificación inválida")

// pesos módulo 11 de la DIAN, aplicados desde el dígito menos significativo.
var weights = [15]int{3, 7, 13, 17, 19, 23, 29, 37, 41, 43, 47, 53, 59, 67, 71}

// CheckDigit calcula el dígito de verificación de la base de un NIT (sin DV).
// Se ignoran puntos y espacios.
func CheckDigit(base string) (byte, error) {
	digits, err := onlyDigits(base)
	if err != nil {
		return 0, err
	}
	if len(digits) == 0 || len(digits) > len(weights) {
		return 0, fmt.Errorf("%w: la base debe tener entre 1 y %d dígitos", ErrInvalid, len(weights))
	}
	var sum int
	for i := 0; i < len(digits); i++ {
		sum += int(digits[len(digits)-1-i]-'0') * weights[i]
	}
	r := sum % 11
	if r == 0 || r == 1 {
		return byte('0' + r), nil
	}
	return byte('0' + 11 - r), nil
}

// Validate acepta "900.123.456-8" o "900123456-8" (NIT con DV) y documentos sin guion
// (cédulas), que solo deben ser numéricos.
func Validate(id string) error {
	base, dv, hasDV := strings.Cut(strings.TrimSpace(id), "-")
	if !hasDV {
		_, err := onlyDigits(base)
		if err == nil && strings.TrimSpace(base) == "" {
			return fmt.Errorf("%w: vacía", ErrInvalid)
		}
		return err
	}
	dv = strings.TrimSpace(dv)
	if len(dv) != 1 || dv[0] < '0' || dv[0] > '9' {
		return fmt.Errorf("%w: el dígito de verificación debe ser un solo dígito", ErrInvalid)
	}
	want, err := CheckDigit(base)
	if err != nil {
		return err
	}
	if dv[0] != want {
		return fmt.Errorf("%w: dígito de verificación esperado %c, recibido %s", ErrInvalid, want, dv)
	}
	return nil
}

func onlyDigits(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		switch {
		case unicode.IsDigit(r) && r < unicode.MaxASCII:
			out = append(out, byte(r))
		case r == '.' || r == ' ':
		default:
			return nil, fmt.Errorf("%w: carácter %q no permitido", ErrInvalid, r)
		}
	}
	return out, nil
}
