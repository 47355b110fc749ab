package main

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Documentos-api/internal/application/dto"
)

// Encodings aceptados para el CSV del catálogo.
const (
	EncodingAuto   = "auto"
	EncodingUTF8   = "utf8"
	EncodingLatin1 = "latin1"
)

// columnas esperadas (la cabecera es obligatoria, el orden libre).
var requiredColumns = []string{"code", "name", "unit_price"}

// decodeReader devuelve un lector UTF-8. En modo auto se inspecciona el inicio del archivo:
// si no es UTF-8 válido se asume ISO-8859-1 (exportaciones de Excel en Windows).
func decodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch encoding {
	case EncodingUTF8:
		return r, nil
	case EncodingLatin1:
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case EncodingAuto, "":
		br := bufio.NewReaderSize(r, 64*1024)
		head, err := br.Peek(64 * 1024)
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
			return nil, err
		}
		if utf8.Valid(trimPartialRune(head)) {
			return br, nil
		}
		return transform.NewReader(br, charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("encoding %q no soportado (auto, utf8, latin1)", encoding)
	}
}

// trimPartialRune descarta una runa cortada al final del bloque leído.
func trimPartialRune(b []byte) []byte {
	for i := 0; i < utf8.UTFMax && len(b) > 0; i++ {
		if utf8.Valid(b) {
			return b
		}
		b = b[:len(b)-1]
	}
	return b
}

// readCatalog lee productos de un CSV separado por sep. Las filas vacías se omiten.
// Los errores indican el número de línea.
func readCatalog(r io.Reader, encoding string, sep rune) ([]dto.CreateProductRequest, error) {
	dr, err := decodeReader(r, encoding)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(dr)
	cr.Comma = sep
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	// Excel deja sin escapar la marca de pulgadas: 1/2" niquelada.
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		idx[h] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("falta la columna %q", col)
		}
	}
	field := func(rec []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var out []dto.CreateProductRequest
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		price, err := parseAmount(field(rec, "unit_price"))
		if err != nil {
			return nil, fmt.Errorf("línea %d: unit_price: %w", line, err)
		}
		taxRate := decimal.Zero
		if raw := field(rec, "tax_rate"); raw != "" {
			if taxRate, err = parseAmount(raw); err != nil {
				return nil, fmt.Errorf("línea %d: tax_rate: %w", line, err)
			}
		}
		out = append(out, dto.CreateProductRequest{
			Code:        field(rec, "code"),
			Name:        field(rec, "name"),
			Description: field(rec, "description"),
			UnitPrice:   price,
			TaxRate:     taxRate,
			UnitMeasure: field(rec, "unit_measure"),
		})
	}
	return out, nil
}

// parseAmount acepta "1234.5" y el formato local "1.234,5".
func parseAmount(raw string) (decimal.Decimal, error) {
	s := strings.ReplaceAll(raw, " ", "")
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	return decimal.NewFromString(s)
}
