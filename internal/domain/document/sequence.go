package document

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// sequenceWidth es el ancho mínimo del sufijo NNN.
const sequenceWidth = 3

// BucketPrefix construye "PREFIX/YYYY/MM/" para el mes de now.
func BucketPrefix(t Type, now time.Time) string {
	return fmt.Sprintf("%s/%04d/%02d/", t.Prefix(), now.Year(), int(now.Month()))
}

// FormatNumber arma el número completo con el sufijo rellenado a 3 dígitos.
func FormatNumber(t Type, now time.Time, seq int) string {
	return fmt.Sprintf("%s%0*d", BucketPrefix(t, now), sequenceWidth, seq)
}

// ParseSequence extrae el sufijo numérico de number si pertenece al bucket prefix.
func ParseSequence(prefix, number string) (int, bool) {
	if !strings.HasPrefix(number, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(number[len(prefix):])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// NextNumber calcula el siguiente número del bucket (tipo, año, mes) a partir de los
// números existentes. El siguiente es el mayor sufijo + 1; sin huecos coincide con count + 1.
func NextNumber(t Type, now time.Time, existing []string) string {
	prefix := BucketPrefix(t, now)
	last := 0
	for _, number := range existing {
		if n, ok := ParseSequence(prefix, number); ok && n > last {
			last = n
		}
	}
	return FormatNumber(t, now, last+1)
}
