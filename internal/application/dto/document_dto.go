package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemRequest línea valorizada. Sin unit_price/tax_rate se toman los del producto.
type LineItemRequest struct {
	ProductID   string           `json:"product_id" validate:"required,uuid"`
	Description string           `json:"description"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	TaxRate     *decimal.Decimal `json:"tax_rate"`
}

// StockItemRequest línea de cantidades (remisiones, traslados, cargas).
type StockItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateQuotationRequest entrada para crear una cotización en borrador.
type CreateQuotationRequest struct {
	CustomerID string            `json:"customer_id" validate:"required,uuid"`
	ApproverID string            `json:"approver_id" validate:"omitempty,uuid"`
	Notes      string            `json:"notes"`
	ValidUntil *time.Time        `json:"valid_until"`
	Items      []LineItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateInvoiceRequest entrada para crear una factura. Con quotation_id y sin items se
// copian las líneas de la cotización aceptada.
type CreateInvoiceRequest struct {
	CustomerID  string            `json:"customer_id" validate:"omitempty,uuid"`
	QuotationID string            `json:"quotation_id" validate:"omitempty,uuid"`
	DueDate     *time.Time        `json:"due_date"`
	Items       []LineItemRequest `json:"items" validate:"omitempty,dive"`
}

// CreateDeliveryNoteRequest entrada para crear una remisión pendiente.
type CreateDeliveryNoteRequest struct {
	CustomerID  string             `json:"customer_id" validate:"required,uuid"`
	WarehouseID string             `json:"warehouse_id" validate:"required,uuid"`
	InvoiceID   string             `json:"invoice_id" validate:"omitempty,uuid"`
	Items       []StockItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateTransferRequest entrada para crear un traslado pendiente.
type CreateTransferRequest struct {
	FromWarehouseID string             `json:"from_warehouse_id" validate:"required,uuid"`
	ToWarehouseID   string             `json:"to_warehouse_id" validate:"required,uuid,nefield=FromWarehouseID"`
	Notes           string             `json:"notes"`
	Items           []StockItemRequest `json:"items" validate:"required,min=1,dive"`
}

// LineItemResponse línea valorizada.
type LineItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// StockItemResponse línea de cantidades.
type StockItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// DocumentHeader campos comunes de salida.
type DocumentHeader struct {
	ID        string    `json:"id"`
	Number    string    `json:"number"`
	Status    string    `json:"status"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TotalsResponse totales de documentos valorizados.
type TotalsResponse struct {
	NetTotal   decimal.Decimal `json:"net_total"`
	TaxTotal   decimal.Decimal `json:"tax_total"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// QuotationResponse salida de una cotización.
type QuotationResponse struct {
	DocumentHeader
	TotalsResponse
	CustomerID string             `json:"customer_id"`
	ApproverID string             `json:"approver_id,omitempty"`
	Notes      string             `json:"notes,omitempty"`
	ValidUntil *time.Time         `json:"valid_until,omitempty"`
	Items      []LineItemResponse `json:"items,omitempty"`
}

// InvoiceResponse salida de una factura.
type InvoiceResponse struct {
	DocumentHeader
	TotalsResponse
	CustomerID  string             `json:"customer_id"`
	QuotationID string             `json:"quotation_id,omitempty"`
	DueDate     *time.Time         `json:"due_date,omitempty"`
	Items       []LineItemResponse `json:"items,omitempty"`
}

// DeliveryNoteResponse salida de una remisión.
type DeliveryNoteResponse struct {
	DocumentHeader
	CustomerID  string              `json:"customer_id"`
	WarehouseID string              `json:"warehouse_id"`
	InvoiceID   string              `json:"invoice_id,omitempty"`
	Items       []StockItemResponse `json:"items,omitempty"`
}

// TransferResponse salida de un traslado.
type TransferResponse struct {
	DocumentHeader
	FromWarehouseID string              `json:"from_warehouse_id"`
	ToWarehouseID   string              `json:"to_warehouse_id"`
	Notes           string              `json:"notes,omitempty"`
	Items           []StockItemResponse `json:"items,omitempty"`
}

// NumberResponse número que obtendría la próxima creación. No queda reservado.
type NumberResponse struct {
	Type     string `json:"type"`
	Number   string `json:"number"`
	Reserved bool   `json:"reserved"`
}

// StatusChangeResponse resultado de una transición.
type StatusChangeResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Number    string    `json:"number"`
	Action    string    `json:"action"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	UpdatedAt time.Time `json:"updated_at"`
}
