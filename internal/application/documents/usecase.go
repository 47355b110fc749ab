// Package documents casos de uso de cotizaciones, facturas, remisiones y traslados:
// numeración, creación, transiciones de estado, consulta y PDF.
package documents

import (
	"context"
	"time"

	"github.com/jhoicas/Documentos-api/internal/domain/repository"
	"github.com/jhoicas/Documentos-api/pkg/logger"
)

// Readers repositorios de lectura fuera de transacción (pool).
type Readers struct {
	Sequences     repository.SequenceRepository
	Quotations    repository.QuotationRepository
	Invoices      repository.InvoiceRepository
	DeliveryNotes repository.DeliveryNoteRepository
	Transfers     repository.TransferRepository
	Products      repository.ProductRepository
	Customers     repository.CustomerRepository
	Warehouses    repository.WarehouseRepository
	Users         repository.UserRepository
}

// UseCase orquesta las operaciones sobre documentos.
type UseCase struct {
	tx         TxRunner
	read       Readers
	events     EventPublisher
	pdf        PDFRenderer
	log        *logger.Logger
	issuerName string
	now        func() time.Time
}

// Option ajusta el UseCase en la construcción.
type Option func(*UseCase)

// WithClock fija el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) { uc.now = now }
}

// WithIssuerName nombre de la empresa emisora en los PDF.
func WithIssuerName(name string) Option {
	return func(uc *UseCase) { uc.issuerName = name }
}

// NewUseCase construye el caso de uso. events y pdf pueden ser nil.
func NewUseCase(tx TxRunner, read Readers, events EventPublisher, pdf PDFRenderer, log *logger.Logger, opts ...Option) *UseCase {
	uc := &UseCase{
		tx:     tx,
		read:   read,
		events: events,
		pdf:    pdf,
		log:    log,
		now:    time.Now,
	}
	for _, o := range opts {
		o(uc)
	}
	return uc
}

// publish envía el evento después del commit; los errores solo se registran.
func (uc *UseCase) publish(ctx context.Context, evt Event) {
	if uc.events == nil {
		return
	}
	if err := uc.events.Publish(ctx, evt); err != nil {
		uc.log.Error().Err(err).
			Str("event", evt.Name).
			Str("document_id", evt.DocumentID).
			Msg("publicar evento de documento")
	}
}
