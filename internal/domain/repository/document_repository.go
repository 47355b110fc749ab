package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Documentos-api/internal/domain/document"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
)

// DocumentStateRepository operaciones de estado comunes a los cuatro tipos.
type DocumentStateRepository interface {
	// GetForUpdate lee y bloquea la fila del documento. nil si no existe.
	GetForUpdate(ctx context.Context, t document.Type, id string) (*entity.DocumentState, error)
	// UpdateStatus aplica from → to solo si el estado actual sigue siendo from.
	// Devuelve domain.ErrInvalidTransition si no se actualizó ninguna fila.
	UpdateStatus(ctx context.Context, t document.Type, id string, from, to document.Status, at time.Time) error
}

// QuotationRepository persistencia de cotizaciones con sus líneas.
type QuotationRepository interface {
	Create(ctx context.Context, q *entity.Quotation) error
	GetByID(ctx context.Context, id string) (*entity.Quotation, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Quotation, error)
	Delete(ctx context.Context, id string) error
}

// InvoiceRepository persistencia de facturas con sus líneas.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error)
}

// DeliveryNoteRepository persistencia de remisiones con sus líneas.
type DeliveryNoteRepository interface {
	Create(ctx context.Context, dn *entity.DeliveryNote) error
	GetByID(ctx context.Context, id string) (*entity.DeliveryNote, error)
	List(ctx context.Context, limit, offset int) ([]*entity.DeliveryNote, error)
}

// TransferRepository persistencia de traslados con sus líneas.
type TransferRepository interface {
	Create(ctx context.Context, tr *entity.Transfer) error
	GetByID(ctx context.Context, id string) (*entity.Transfer, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Transfer, error)
}
