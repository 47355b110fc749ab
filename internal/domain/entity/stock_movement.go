package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Origen de un movimiento del libro de inventario.
const (
	MovementSourceImport   = "import"   // carga de stock
	MovementSourceTransfer = "transfer" // traslado completado (par -/+)
	MovementSourceDelivery = "delivery" // remisión entregada (negativo)
)

// StockMovement entrada del libro de inventario. Solo se inserta, nunca se modifica.
type StockMovement struct {
	ID          string
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal // con signo: positivo entra, negativo sale
	SourceType  string          // import, transfer, delivery
	SourceID    string          // documento que lo originó (vacío en imports)
	Reference   string          // número de documento o referencia libre
	CreatedBy   string          // UserID
	CreatedAt   time.Time
}
