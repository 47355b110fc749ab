package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Documentos-api/internal/domain"
	"github.com/jhoicas/Documentos-api/internal/domain/document"
	"github.com/jhoicas/Documentos-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo numeración PREFIX/YYYY/MM/NNN para los cuatro tipos de documento.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Reserve exige una tx como Querier.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Reserve bloquea la tabla del tipo en modo SHARE ROW EXCLUSIVE (choca consigo mismo y con
// INSERT) y calcula el siguiente número. El lock se libera con el commit o rollback de la tx
// que inserta el documento, así dos creaciones del mismo tipo nunca leen el mismo máximo.
func (r *SequenceRepo) Reserve(ctx context.Context, t document.Type, now time.Time) (string, error) {
	if !t.Valid() {
		return "", domain.ErrInvalidInput
	}
	lock := fmt.Sprintf("LOCK TABLE %s IN SHARE ROW EXCLUSIVE MODE", tableIdent(t))
	if _, err := r.q.Exec(ctx, lock); err != nil {
		return "", fmt.Errorf("%w: lock %s: %w", domain.ErrStoreUnavailable, t.Table(), err)
	}
	return r.next(ctx, t, now)
}

// Peek mismo cálculo que Reserve, sin lock. El número es orientativo.
func (r *SequenceRepo) Peek(ctx context.Context, t document.Type, now time.Time) (string, error) {
	if !t.Valid() {
		return "", domain.ErrInvalidInput
	}
	return r.next(ctx, t, now)
}

func (r *SequenceRepo) next(ctx context.Context, t document.Type, now time.Time) (string, error) {
	prefix := document.BucketPrefix(t, now)
	query := fmt.Sprintf(`SELECT number FROM %s WHERE number LIKE $1`, tableIdent(t))
	rows, err := r.q.Query(ctx, query, prefix+"%")
	if err != nil {
		return "", fmt.Errorf("%w: list numbers: %w", domain.ErrStoreUnavailable, err)
	}
	numbers, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return "", fmt.Errorf("%w: scan numbers: %w", domain.ErrStoreUnavailable, err)
	}
	return document.NextNumber(t, now, numbers), nil
}

// tableIdent nombre de tabla escapado; solo proviene del registro de tipos.
func tableIdent(t document.Type) string {
	return pgx.Identifier{t.Table()}.Sanitize()
}
