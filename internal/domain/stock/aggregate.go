// Package stock agrega el libro de movimientos de inventario y aplica el filtrado
// y orden de presentación sobre el resultado.
package stock

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Documentos-api/internal/domain"
)

// Line saldo agregado de una entidad (bodega para un producto, producto para una bodega).
type Line struct {
	ID       string
	Code     string
	Name     string
	Quantity decimal.Decimal
}

// SortBy criterio de orden del agregado.
type SortBy string

const (
	SortQuantityAsc  SortBy = "quantity-asc"
	SortQuantityDesc SortBy = "quantity-desc"
	SortNameAsc      SortBy = "name-asc"
	SortNameDesc     SortBy = "name-desc"
	SortCodeAsc      SortBy = "code-asc"
	SortCodeDesc     SortBy = "code-desc"
)

// DefaultSort se usa cuando sortBy no viene en la petición.
const DefaultSort = SortNameAsc

// ParseSortBy valida el parámetro sortBy. Vacío equivale a DefaultSort.
func ParseSortBy(s string) (SortBy, error) {
	switch SortBy(s) {
	case "":
		return DefaultSort, nil
	case SortQuantityAsc, SortQuantityDesc, SortNameAsc, SortNameDesc, SortCodeAsc, SortCodeDesc:
		return SortBy(s), nil
	}
	return "", domain.ErrInvalidInput
}

// Filter opciones de presentación.
type Filter struct {
	IncludeZeroStock bool
	SortBy           SortBy
}

// Sum suma cantidades con signo.
func Sum(quantities ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, q := range quantities {
		total = total.Add(q)
	}
	return total
}

// Total suma las cantidades de las líneas.
func Total(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Quantity)
	}
	return total
}

// Apply filtra saldos cero (salvo IncludeZeroStock) y ordena. No modifica lines.
// El orden es estable y desempata por ID.
func Apply(lines []Line, f Filter) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if !f.IncludeZeroStock && l.Quantity.IsZero() {
			continue
		}
		out = append(out, l)
	}
	sortBy := f.SortBy
	if sortBy == "" {
		sortBy = DefaultSort
	}
	sort.SliceStable(out, func(i, j int) bool {
		c := compare(out[i], out[j], sortBy)
		if c == 0 {
			return out[i].ID < out[j].ID
		}
		return c < 0
	})
	return out
}

func compare(a, b Line, by SortBy) int {
	switch by {
	case SortQuantityAsc:
		return a.Quantity.Cmp(b.Quantity)
	case SortQuantityDesc:
		return b.Quantity.Cmp(a.Quantity)
	case SortNameDesc:
		return strings.Compare(strings.ToLower(b.Name), strings.ToLower(a.Name))
	case SortCodeAsc:
		return strings.Compare(a.Code, b.Code)
	case SortCodeDesc:
		return strings.Compare(b.Code, a.Code)
	default:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	}
}

// Requirement cantidad requerida de un producto en una bodega.
type Requirement struct {
	ProductID string
	Quantity  decimal.Decimal
}

// Merge agrupa requerimientos por producto conservando el orden de primera aparición.
func Merge(reqs []Requirement) []Requirement {
	idx := map[string]int{}
	var out []Requirement
	for _, r := range reqs {
		if i, ok := idx[r.ProductID]; ok {
			out[i].Quantity = out[i].Quantity.Add(r.Quantity)
			continue
		}
		idx[r.ProductID] = len(out)
		out = append(out, r)
	}
	return out
}
