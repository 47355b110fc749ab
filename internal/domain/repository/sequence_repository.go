package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Documentos-api/internal/domain/document"
)

// SequenceRepository numera documentos.
type SequenceRepository interface {
	// Reserve debe llamarse dentro de la transacción que inserta el documento: bloquea la
	// tabla del tipo hasta commit/rollback y devuelve el siguiente número del mes.
	Reserve(ctx context.Context, t document.Type, now time.Time) (string, error)
	// Peek calcula el mismo número sin bloquear ni reservar.
	Peek(ctx context.Context, t document.Type, now time.Time) (string, error)
}
