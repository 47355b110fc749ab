package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Documentos-api/internal/domain"
	"github.com/jhoicas/Documentos-api/internal/domain/document"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
	"github.com/jhoicas/Documentos-api/internal/domain/repository"
)

var _ repository.DocumentStateRepository = (*DocumentStateRepo)(nil)

// DocumentStateRepo lectura con bloqueo y actualización condicional del estado.
type DocumentStateRepo struct {
	q Querier
}

// NewDocumentStateRepository construye el adaptador. Pasar la tx de la transición.
func NewDocumentStateRepository(q Querier) *DocumentStateRepo {
	return &DocumentStateRepo{q: q}
}

// GetForUpdate SELECT ... FOR UPDATE sobre la fila del documento.
func (r *DocumentStateRepo) GetForUpdate(ctx context.Context, t document.Type, id string) (*entity.DocumentState, error) {
	if !t.Valid() {
		return nil, domain.ErrInvalidInput
	}
	approver := "''"
	if t == document.TypeQuotation {
		approver = "COALESCE(approver_id::text, '')"
	}
	query := fmt.Sprintf(`
		SELECT id, number, status, %s
		FROM %s WHERE id = $1
		FOR UPDATE`, approver, tableIdent(t))
	var s entity.DocumentState
	err := r.q.QueryRow(ctx, query, id).Scan(&s.ID, &s.Number, &s.Status, &s.ApproverID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get document for update", err)
	}
	return &s, nil
}

// UpdateStatus UPDATE condicionado al estado leído. Cero filas afectadas significa que otro
// proceso cambió el estado entre tanto.
func (r *DocumentStateRepo) UpdateStatus(ctx context.Context, t document.Type, id string, from, to document.Status, at time.Time) error {
	if !t.Valid() {
		return domain.ErrInvalidInput
	}
	query := fmt.Sprintf(`
		UPDATE %s SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2`, tableIdent(t))
	cmd, err := r.q.Exec(ctx, query, id, from, to, at)
	if err != nil {
		return wrapErr("update document status", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}
