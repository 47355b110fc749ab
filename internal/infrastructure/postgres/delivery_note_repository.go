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

var _ repository.DeliveryNoteRepository = (*DeliveryNoteRepo)(nil)

const deliveryNoteColumns = `
	id, number, status, customer_id, warehouse_id, COALESCE(invoice_id::text, ''),
	created_by, created_at, updated_at`

// DeliveryNoteRepo implementación de DeliveryNoteRepository (usable con pool o tx).
type DeliveryNoteRepo struct {
	q Querier
}

// NewDeliveryNoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeliveryNoteRepository(q Querier) *DeliveryNoteRepo {
	return &DeliveryNoteRepo{q: q}
}

// Create persiste la remisión y sus líneas.
func (r *DeliveryNoteRepo) Create(ctx context.Context, dn *entity.DeliveryNote) error {
	if dn.ID == "" {
		dn.ID = uuid.New().String()
	}
	query := `
		INSERT INTO delivery_notes (id, number, status, customer_id, warehouse_id, invoice_id,
		                            created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		dn.ID, dn.Number, dn.Status, dn.CustomerID, dn.WarehouseID, nullIfEmpty(dn.InvoiceID),
		dn.CreatedBy, dn.CreatedAt, dn.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("delivery note number %s: %w", dn.Number, domain.ErrConflict)
		}
		return wrapErr("insert delivery note", err)
	}
	return insertStockItems(ctx, r.q, "delivery_note_items", dn.ID, dn.Items)
}

// GetByID obtiene la remisión con sus líneas.
func (r *DeliveryNoteRepo) GetByID(ctx context.Context, id string) (*entity.DeliveryNote, error) {
	dn, err := scanDeliveryNote(r.q.QueryRow(ctx, `SELECT `+deliveryNoteColumns+` FROM delivery_notes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get delivery note", err)
	}
	if dn.Items, err = listStockItems(ctx, r.q, "delivery_note_items", dn.ID); err != nil {
		return nil, err
	}
	return dn, nil
}

// List remisiones más recientes primero (sin líneas).
func (r *DeliveryNoteRepo) List(ctx context.Context, limit, offset int) ([]*entity.DeliveryNote, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+deliveryNoteColumns+` FROM delivery_notes ORDER BY created_at DESC, number DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, wrapErr("list delivery notes", err)
	}
	defer rows.Close()
	var list []*entity.DeliveryNote
	for rows.Next() {
		dn, err := scanDeliveryNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan delivery note: %w", err)
		}
		list = append(list, dn)
	}
	return list, rows.Err()
}

func scanDeliveryNote(row pgx.Row) (*entity.DeliveryNote, error) {
	var dn entity.DeliveryNote
	err := row.Scan(
		&dn.ID, &dn.Number, &dn.Status, &dn.CustomerID, &dn.WarehouseID, &dn.InvoiceID,
		&dn.CreatedBy, &dn.CreatedAt, &dn.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &dn, nil
}
