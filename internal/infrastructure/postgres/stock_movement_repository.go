package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Documentos-api/internal/domain/entity"
	"github.com/jhoicas/Documentos-api/internal/domain/repository"
	"github.com/jhoicas/Documentos-api/internal/domain/stock"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de inventario sobre la tabla stock_movements (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Append inserta los movimientos en un solo batch.
func (r *StockMovementRepo) Append(ctx context.Context, movements ...*entity.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}
	query := `
		INSERT INTO stock_movements (id, product_id, warehouse_id, quantity, source_type, source_id, reference, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	batch := &pgx.Batch{}
	for _, m := range movements {
		if m.ID == "" {
			m.ID = uuid.New().String()
		}
		batch.Queue(query,
			m.ID, m.ProductID, m.WarehouseID, m.Quantity, m.SourceType,
			nullIfEmpty(m.SourceID), m.Reference, m.CreatedBy, m.CreatedAt,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range movements {
		if _, err := br.Exec(); err != nil {
			return wrapErr("insert stock movement", err)
		}
	}
	return nil
}

// Balance SUM(quantity) del producto en la bodega.
func (r *StockMovementRepo) Balance(ctx context.Context, productID, warehouseID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM stock_movements WHERE product_id = $1 AND warehouse_id = $2`
	var qty decimal.Decimal
	if err := r.q.QueryRow(ctx, query, productID, warehouseID).Scan(&qty); err != nil {
		return decimal.Zero, wrapErr("stock balance", err)
	}
	return qty, nil
}

// ByWarehouseForProduct una línea por bodega (incluye bodegas sin movimientos con saldo 0).
func (r *StockMovementRepo) ByWarehouseForProduct(ctx context.Context, productID string) ([]stock.Line, error) {
	query := `
		SELECT w.id, w.code, w.name, COALESCE(SUM(m.quantity), 0)
		FROM warehouses w
		LEFT JOIN stock_movements m ON m.warehouse_id = w.id AND m.product_id = $1
		GROUP BY w.id, w.code, w.name`
	return r.lines(ctx, "stock by warehouse", query, productID)
}

// ByProductForWarehouse una línea por producto (incluye productos sin movimientos con saldo 0).
func (r *StockMovementRepo) ByProductForWarehouse(ctx context.Context, warehouseID string) ([]stock.Line, error) {
	query := `
		SELECT p.id, p.code, p.name, COALESCE(SUM(m.quantity), 0)
		FROM products p
		LEFT JOIN stock_movements m ON m.product_id = p.id AND m.warehouse_id = $1
		GROUP BY p.id, p.code, p.name`
	return r.lines(ctx, "stock by product", query, warehouseID)
}

// ListByProduct movimientos de un producto en orden cronológico inverso.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, warehouse_id, quantity, source_type, COALESCE(source_id::text, ''),
		       reference, created_by, created_at
		FROM stock_movements
		WHERE product_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at < $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, productID, from, to, limit, offset)
	if err != nil {
		return nil, wrapErr("list stock movements", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.WarehouseID, &m.Quantity, &m.SourceType, &m.SourceID,
			&m.Reference, &m.CreatedBy, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func (r *StockMovementRepo) lines(ctx context.Context, op, query, arg string) ([]stock.Line, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()
	var list []stock.Line
	for rows.Next() {
		var l stock.Line
		if err := rows.Scan(&l.ID, &l.Code, &l.Name, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan %s: %w", op, err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
