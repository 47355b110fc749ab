package documents

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Documentos-api/internal/domain/document"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
	"github.com/jhoicas/Documentos-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Sequences     repository.SequenceRepository
	States        repository.DocumentStateRepository
	Quotations    repository.QuotationRepository
	Invoices      repository.InvoiceRepository
	DeliveryNotes repository.DeliveryNoteRepository
	Transfers     repository.TransferRepository
	Movements     repository.StockMovementRepository
	Warehouses    repository.WarehouseRepository
}

// TxRunner ejecuta fn en una transacción: commit si devuelve nil, rollback si no.
type TxRunner interface {
	RunDocuments(ctx context.Context, fn func(repos TxRepos) error) error
}

// Tipos de evento publicados tras el commit.
const (
	EventCreated       = "document.created"
	EventStatusChanged = "document.status_changed"
	EventDeleted       = "document.deleted"
)

// Event notificación de cambio en un documento.
type Event struct {
	Name         string          `json:"event"`
	DocumentType document.Type   `json:"document_type"`
	DocumentID   string          `json:"document_id"`
	Number       string          `json:"number"`
	Action       document.Action `json:"action,omitempty"`
	From         document.Status `json:"from,omitempty"`
	To           document.Status `json:"to,omitempty"`
	ActorID      string          `json:"actor_id"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

// EventPublisher publica eventos de documentos. Un fallo no revierte la operación.
type EventPublisher interface {
	Publish(ctx context.Context, evt Event) error
}

// PrintLine línea de la representación impresa.
type PrintLine struct {
	Code        string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
	Subtotal    decimal.Decimal
}

// Printable datos necesarios para renderizar un documento valorizado.
type Printable struct {
	Type       document.Type
	Title      string
	Number     string
	Status     document.Status
	Date       time.Time
	DueDate    *time.Time
	Customer   *entity.Customer
	Notes      string
	Lines      []PrintLine
	Totals     entity.Totals
	IssuerName string
}

// PDFRenderer genera el PDF de un documento.
type PDFRenderer interface {
	Render(ctx context.Context, doc Printable) ([]byte, error)
}
