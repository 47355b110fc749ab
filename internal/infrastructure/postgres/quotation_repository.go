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

var _ repository.QuotationRepository = (*QuotationRepo)(nil)

const quotationColumns = `
	id, number, status, customer_id, COALESCE(approver_id::text, ''), notes, valid_until,
	net_total, tax_total, grand_total, created_by, created_at, updated_at`

// QuotationRepo implementación de QuotationRepository (usable con pool o tx).
type QuotationRepo struct {
	q Querier
}

// NewQuotationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuotationRepository(q Querier) *QuotationRepo {
	return &QuotationRepo{q: q}
}

// Create persiste la cabecera y sus líneas. El número debe venir reservado.
func (r *QuotationRepo) Create(ctx context.Context, qt *entity.Quotation) error {
	if qt.ID == "" {
		qt.ID = uuid.New().String()
	}
	query := `
		INSERT INTO quotations (id, number, status, customer_id, approver_id, notes, valid_until,
		                        net_total, tax_total, grand_total, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		qt.ID, qt.Number, qt.Status, qt.CustomerID, nullIfEmpty(qt.ApproverID), qt.Notes, qt.ValidUntil,
		qt.NetTotal, qt.TaxTotal, qt.GrandTotal, qt.CreatedBy, qt.CreatedAt, qt.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("quotation number %s: %w", qt.Number, domain.ErrConflict)
		}
		return wrapErr("insert quotation", err)
	}
	return insertLineItems(ctx, r.q, "quotation_items", qt.ID, qt.Items)
}

// GetByID obtiene la cotización con sus líneas.
func (r *QuotationRepo) GetByID(ctx context.Context, id string) (*entity.Quotation, error) {
	row := r.q.QueryRow(ctx, `SELECT `+quotationColumns+` FROM quotations WHERE id = $1`, id)
	qt, err := scanQuotation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get quotation", err)
	}
	if qt.Items, err = listLineItems(ctx, r.q, "quotation_items", qt.ID); err != nil {
		return nil, err
	}
	return qt, nil
}

// List cotizaciones más recientes primero (sin líneas).
func (r *QuotationRepo) List(ctx context.Context, limit, offset int) ([]*entity.Quotation, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+quotationColumns+` FROM quotations ORDER BY created_at DESC, number DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, wrapErr("list quotations", err)
	}
	defer rows.Close()
	var list []*entity.Quotation
	for rows.Next() {
		qt, err := scanQuotation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quotation: %w", err)
		}
		list = append(list, qt)
	}
	return list, rows.Err()
}

// Delete elimina la cotización; las líneas caen por ON DELETE CASCADE.
func (r *QuotationRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM quotations WHERE id = $1`, id)
	if err != nil {
		return wrapErr("delete quotation", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanQuotation(row pgx.Row) (*entity.Quotation, error) {
	var qt entity.Quotation
	err := row.Scan(
		&qt.ID, &qt.Number, &qt.Status, &qt.CustomerID, &qt.ApproverID, &qt.Notes, &qt.ValidUntil,
		&qt.NetTotal, &qt.TaxTotal, &qt.GrandTotal, &qt.CreatedBy, &qt.CreatedAt, &qt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &qt, nil
}
