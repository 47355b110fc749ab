package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del catálogo. El stock no vive aquí: se deriva del libro de movimientos.
type Product struct {
	ID          string
	Code        string // único
	Name        string
	Description string
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal // 0, 0.05 (5%), 0.19 (19%)
	UnitMeasure string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
