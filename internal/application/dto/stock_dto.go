package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLineResponse saldo de una bodega (para un producto) o de un producto (para una bodega).
type StockLineResponse struct {
	ID       string          `json:"id"`
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
}

// StockResponse agregado del libro. Total es la suma de todos los movimientos del alcance,
// independiente del filtro de ceros.
type StockResponse struct {
	Scope   string              `json:"scope"` // product | warehouse
	ScopeID string              `json:"scope_id"`
	SortBy  string              `json:"sort_by"`
	Lines   []StockLineResponse `json:"lines"`
	Total   decimal.Decimal     `json:"total"`
}

// StockImportRequest carga de stock (movimientos positivos) en una bodega.
type StockImportRequest struct {
	WarehouseID string             `json:"warehouse_id" validate:"required,uuid"`
	Reference   string             `json:"reference"`
	Items       []StockItemRequest `json:"items" validate:"required,min=1,dive"`
}

// StockImportResponse resultado de la carga.
type StockImportResponse struct {
	WarehouseID string `json:"warehouse_id"`
	Reference   string `json:"reference"`
	Movements   int    `json:"movements"`
}

// StockMovementResponse entrada del libro.
type StockMovementResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	SourceType  string          `json:"source_type"`
	SourceID    string          `json:"source_id,omitempty"`
	Reference   string          `json:"reference,omitempty"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
}
