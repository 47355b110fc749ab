package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Documentos-api/internal/domain/entity"
)

// Las tablas de líneas comparten forma: document_id + position + columnas propias.

func insertLineItems(ctx context.Context, q Querier, table, documentID string, items []entity.LineItem) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, document_id, position, product_id, description, quantity, unit_price, tax_rate, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`, pgx.Identifier{table}.Sanitize())
	for i := range items {
		it := &items[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		_, err := q.Exec(ctx, query,
			it.ID, documentID, i+1, it.ProductID, it.Description,
			it.Quantity, it.UnitPrice, it.TaxRate, it.Subtotal,
		)
		if err != nil {
			return wrapErr("insert "+table, err)
		}
	}
	return nil
}

func listLineItems(ctx context.Context, q Querier, table, documentID string) ([]entity.LineItem, error) {
	query := fmt.Sprintf(`
		SELECT id, product_id, description, quantity, unit_price, tax_rate, subtotal
		FROM %s WHERE document_id = $1 ORDER BY position`, pgx.Identifier{table}.Sanitize())
	rows, err := q.Query(ctx, query, documentID)
	if err != nil {
		return nil, wrapErr("list "+table, err)
	}
	defer rows.Close()
	var list []entity.LineItem
	for rows.Next() {
		var it entity.LineItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Description, &it.Quantity, &it.UnitPrice, &it.TaxRate, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

func insertStockItems(ctx context.Context, q Querier, table, documentID string, items []entity.StockItem) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, document_id, position, product_id, quantity)
		VALUES ($1, $2, $3, $4, $5)`, pgx.Identifier{table}.Sanitize())
	for i := range items {
		it := &items[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		if _, err := q.Exec(ctx, query, it.ID, documentID, i+1, it.ProductID, it.Quantity); err != nil {
			return wrapErr("insert "+table, err)
		}
	}
	return nil
}

func listStockItems(ctx context.Context, q Querier, table, documentID string) ([]entity.StockItem, error) {
	query := fmt.Sprintf(`
		SELECT id, product_id, quantity
		FROM %s WHERE document_id = $1 ORDER BY position`, pgx.Identifier{table}.Sanitize())
	rows, err := q.Query(ctx, query, documentID)
	if err != nil {
		return nil, wrapErr("list "+table, err)
	}
	defer rows.Close()
	var list []entity.StockItem
	for rows.Next() {
		var it entity.StockItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
