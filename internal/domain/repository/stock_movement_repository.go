package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Documentos-api/internal/domain/entity"
	"github.com/jhoicas/Documentos-api/internal/domain/stock"
)

// StockMovementRepository puerto del libro de inventario. Solo agrega y consulta:
// no existe actualización ni borrado de movimientos.
type StockMovementRepository interface {
	Append(ctx context.Context, movements ...*entity.StockMovement) error
	// Balance saldo de un producto en una bodega.
	Balance(ctx context.Context, productID, warehouseID string) (decimal.Decimal, error)
	// ByWarehouseForProduct saldo del producto en cada bodega.
	ByWarehouseForProduct(ctx context.Context, productID string) ([]stock.Line, error)
	// ByProductForWarehouse saldo de cada producto en la bodega.
	ByProductForWarehouse(ctx context.Context, warehouseID string) ([]stock.Line, error)
	ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
