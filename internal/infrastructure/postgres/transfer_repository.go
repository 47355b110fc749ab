package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Documentos-api/internal/domain"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
	"github.com/jhoicas/Documentos-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

const transferColumns = `
	id, number, status, from_warehouse_id, to_warehouse_id, notes,
	created_by, created_at, updated_at`

// TransferRepo implementación de TransferRepository (usable con pool o tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Create persiste el traslado y sus líneas.
func (r *TransferRepo) Create(ctx context.Context, tr *entity.Transfer) error {
	if tr.ID == "" {
		tr.ID = uuid.New().String()
	}
	query := `
		INSERT INTO transfers (id, number, status, from_warehouse_id, to_warehouse_id, notes,
		                       created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		tr.ID, tr.Number, tr.Status, tr.FromWarehouseID, tr.ToWarehouseID, tr.Notes,
		tr.CreatedBy, tr.CreatedAt, tr.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("transfer number %s: %w", tr.Number, domain.ErrConflict)
		}
		return wrapErr("insert transfer", err)
	}
	return insertStockItems(ctx, r.q, "transfer_items", tr.ID, tr.Items)
}

// GetByID obtiene el traslado con sus líneas.
func (r *TransferRepo) GetByID(ctx context.Context, id string) (*entity.Transfer, error) {
	tr, err := scanTransfer(r.q.QueryRow(ctx, `SELECT `+transferColumns+` FROM transfers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get transfer", err)
	}
	if tr.Items, err = listStockItems(ctx, r.q, "transfer_items", tr.ID); err != nil {
		return nil, err
	}
	return tr, nil
}

// List traslados más recientes primero (sin líneas).
func (r *TransferRepo) List(ctx context.Context, limit, offset int) ([]*entity.Transfer, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+transferColumns+` FROM transfers ORDER BY created_at DESC, number DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, wrapErr("list transfers", err)
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		tr, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, tr)
	}
	return list, rows.Err()
}

func scanTransfer(row pgx.Row) (*entity.Transfer, error) {
	var tr entity.Transfer
	err := row.Scan(
		&tr.ID, &tr.Number, &tr.Status, &tr.FromWarehouseID, &tr.ToWarehouseID, &tr.Notes,
		&tr.CreatedBy, &tr.CreatedAt, &tr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tr, nil
}
