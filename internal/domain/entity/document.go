package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Documentos-api/internal/domain/document"
)

// DocumentMeta campos comunes a cotizaciones, facturas, remisiones y traslados.
type DocumentMeta struct {
	ID        string
	Number    string // PREFIX/YYYY/MM/NNN, único por tabla
	Status    document.Status
	CreatedBy string // UserID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DocumentState lo mínimo que necesita la máquina de estados (leído con FOR UPDATE).
type DocumentState struct {
	ID         string
	Number     string
	Status     document.Status
	ApproverID string // solo cotizaciones
}

// LineItem línea valorizada (cotizaciones y facturas).
type LineItem struct {
	ID          string
	ProductID   string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal // 0, 0.05, 0.19
	Subtotal    decimal.Decimal // Quantity * UnitPrice, sin impuesto
}

// StockItem línea de cantidades (remisiones y traslados).
type StockItem struct {
	ID        string
	ProductID string
	Quantity  decimal.Decimal
}

// Totals totales de un documento valorizado.
type Totals struct {
	NetTotal   decimal.Decimal
	TaxTotal   decimal.Decimal
	GrandTotal decimal.Decimal
}

// CalculateTotals completa Subtotal en cada línea y devuelve los totales.
func CalculateTotals(items []LineItem) Totals {
	var t Totals
	for i := range items {
		sub := items[i].Quantity.Mul(items[i].UnitPrice)
		items[i].Subtotal = sub
		t.NetTotal = t.NetTotal.Add(sub)
		t.TaxTotal = t.TaxTotal.Add(sub.Mul(items[i].TaxRate))
	}
	t.NetTotal = t.NetTotal.Round(2)
	t.TaxTotal = t.TaxTotal.Round(2)
	t.GrandTotal = t.NetTotal.Add(t.TaxTotal)
	return t
}

// Quotation cotización. ApproverID es el único usuario que puede aprobarla.
type Quotation struct {
	DocumentMeta
	Totals
	CustomerID string
	ApproverID string
	Notes      string
	ValidUntil *time.Time
	Items      []LineItem
}

// Invoice factura de venta, opcionalmente originada en una cotización aceptada.
type Invoice struct {
	DocumentMeta
	Totals
	CustomerID  string
	QuotationID string
	DueDate     *time.Time
	Items       []LineItem
}

// DeliveryNote remisión: al entregarse descuenta stock de WarehouseID.
type DeliveryNote struct {
	DocumentMeta
	CustomerID  string
	WarehouseID string
	InvoiceID   string
	Items       []StockItem
}

// Transfer traslado entre bodegas: al completarse mueve stock de origen a destino.
type Transfer struct {
	DocumentMeta
	FromWarehouseID string
	ToWarehouseID   string
	Notes           string
	Items           []StockItem
}
