package documents

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Documentos-api/internal/application/dto"
	"github.com/jhoicas/Documentos-api/internal/domain"
	"github.com/jhoicas/Documentos-api/internal/domain/document"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
	"github.com/jhoicas/Documentos-api/internal/domain/rbac"
)

// CreateQuotation crea una cotización en borrador con número reservado en la misma transacción.
func (uc *UseCase) CreateQuotation(ctx context.Context, actor rbac.Subject, in dto.CreateQuotationRequest) (*dto.QuotationResponse, error) {
	if err := uc.requireCustomer(ctx, in.CustomerID); err != nil {
		return nil, err
	}
	if in.ApproverID != "" {
		approver, err := uc.read.Users.GetByID(ctx, in.ApproverID)
		if err != nil {
			return nil, err
		}
		if approver == nil {
			return nil, fmt.Errorf("%w: approver_id no existe", domain.ErrInvalidInput)
		}
	}
	items, err := uc.resolveLineItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	qt := &entity.Quotation{
		DocumentMeta: newMeta(document.TypeQuotation, actor, now),
		Totals:       entity.CalculateTotals(items),
		CustomerID:   in.CustomerID,
		ApproverID:   in.ApproverID,
		Notes:        in.Notes,
		ValidUntil:   in.ValidUntil,
		Items:        items,
	}
	err = uc.tx.RunDocuments(ctx, func(repos TxRepos) error {
		number, err := repos.Sequences.Reserve(ctx, document.TypeQuotation, now)
		if err != nil {
			return err
		}
		qt.Number = number
		return repos.Quotations.Create(ctx, qt)
	})
	if err != nil {
		return nil, err
	}
	uc.created(ctx, document.TypeQuotation, qt.ID, qt.Number, actor, now)
	return toQuotationResponse(qt), nil
}

// CreateInvoice crea una factura pendiente de pago. Con QuotationID la cotización debe estar
// aceptada; si no llegan líneas se copian las de la cotización.
func (uc *UseCase) CreateInvoice(ctx context.Context, actor rbac.Subject, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	var items []entity.LineItem
	if in.QuotationID != "" {
		qt, err := uc.read.Quotations.GetByID(ctx, in.QuotationID)
		if err != nil {
			return nil, err
		}
		if qt == nil {
			return nil, fmt.Errorf("%w: cotización %s", domain.ErrNotFound, in.QuotationID)
		}
		if qt.Status != document.StatusAccepted {
			return nil, fmt.Errorf("%w: la cotización %s está en estado %s", domain.ErrInvalidTransition, qt.Number, qt.Status)
		}
		if in.CustomerID == "" {
			in.CustomerID = qt.CustomerID
		}
		if in.CustomerID != qt.CustomerID {
			return nil, fmt.Errorf("%w: el cliente no coincide con la cotización", domain.ErrInvalidInput)
		}
		if len(in.Items) == 0 {
			items = copyLineItems(qt.Items)
		}
	}
	if err := uc.requireCustomer(ctx, in.CustomerID); err != nil {
		return nil, err
	}
	if items == nil {
		var err error
		if items, err = uc.resolveLineItems(ctx, in.Items); err != nil {
			return nil, err
		}
	}

	now := uc.now()
	inv := &entity.Invoice{
		DocumentMeta: newMeta(document.TypeInvoice, actor, now),
		Totals:       entity.CalculateTotals(items),
		CustomerID:   in.CustomerID,
		QuotationID:  in.QuotationID,
		DueDate:      in.DueDate,
		Items:        items,
	}
	err := uc.tx.RunDocuments(ctx, func(repos TxRepos) error {
		number, err := repos.Sequences.Reserve(ctx, document.TypeInvoice, now)
		if err != nil {
			return err
		}
		inv.Number = number
		return repos.Invoices.Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	uc.created(ctx, document.TypeInvoice, inv.ID, inv.Number, actor, now)
	return toInvoiceResponse(inv), nil
}

// CreateDeliveryNote crea una remisión pendiente. El stock se descuenta al entregarla.
func (uc *UseCase) CreateDeliveryNote(ctx context.Context, actor rbac.Subject, in dto.CreateDeliveryNoteRequest) (*dto.DeliveryNoteResponse, error) {
	if err := uc.requireCustomer(ctx, in.CustomerID); err != nil {
		return nil, err
	}
	if err := uc.requireWarehouse(ctx, in.WarehouseID); err != nil {
		return nil, err
	}
	if in.InvoiceID != "" {
		inv, err := uc.read.Invoices.GetByID(ctx, in.InvoiceID)
		if err != nil {
			return nil, err
		}
		if inv == nil {
			return nil, fmt.Errorf("%w: factura %s", domain.ErrNotFound, in.InvoiceID)
		}
	}
	items, err := uc.resolveStockItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	dn := &entity.DeliveryNote{
		DocumentMeta: newMeta(document.TypeDeliveryNote, actor, now),
		CustomerID:   in.CustomerID,
		WarehouseID:  in.WarehouseID,
		InvoiceID:    in.InvoiceID,
		Items:        items,
	}
	err = uc.tx.RunDocuments(ctx, func(repos TxRepos) error {
		number, err := repos.Sequences.Reserve(ctx, document.TypeDeliveryNote, now)
		if err != nil {
			return err
		}
		dn.Number = number
		return repos.DeliveryNotes.Create(ctx, dn)
	})
	if err != nil {
		return nil, err
	}
	uc.created(ctx, document.TypeDeliveryNote, dn.ID, dn.Number, actor, now)
	return toDeliveryNoteResponse(dn), nil
}

// CreateTransfer crea un traslado pendiente entre dos bodegas distintas.
func (uc *UseCase) CreateTransfer(ctx context.Context, actor rbac.Subject, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	if in.FromWarehouseID == "" || in.FromWarehouseID == in.ToWarehouseID {
		return nil, fmt.Errorf("%w: las bodegas de origen y destino deben ser distintas", domain.ErrInvalidInput)
	}
	if err := uc.requireWarehouse(ctx, in.FromWarehouseID); err != nil {
		return nil, err
	}
	if err := uc.requireWarehouse(ctx, in.ToWarehouseID); err != nil {
		return nil, err
	}
	items, err := uc.resolveStockItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	tr := &entity.Transfer{
		DocumentMeta:    newMeta(document.TypeTransfer, actor, now),
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Notes:           in.Notes,
		Items:           items,
	}
	err = uc.tx.RunDocuments(ctx, func(repos TxRepos) error {
		number, err := repos.Sequences.Reserve(ctx, document.TypeTransfer, now)
		if err != nil {
			return err
		}
		tr.Number = number
		return repos.Transfers.Create(ctx, tr)
	})
	if err != nil {
		return nil, err
	}
	uc.created(ctx, document.TypeTransfer, tr.ID, tr.Number, actor, now)
	return toTransferResponse(tr), nil
}

func (uc *UseCase) created(ctx context.Context, t document.Type, id, number string, actor rbac.Subject, at time.Time) {
	uc.log.Info().
		Str("type", string(t)).
		Str("id", id).
		Str("number", number).
		Str("user_id", actor.UserID).
		Msg("documento creado")
	uc.publish(ctx, Event{
		Name:         EventCreated,
		DocumentType: t,
		DocumentID:   id,
		Number:       number,
		To:           document.InitialStatus(t),
		ActorID:      actor.UserID,
		OccurredAt:   at,
	})
}

func newMeta(t document.Type, actor rbac.Subject, now time.Time) entity.DocumentMeta {
	return entity.DocumentMeta{
		ID:        uuid.New().String(),
		Status:    document.InitialStatus(t),
		CreatedBy: actor.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (uc *UseCase) requireCustomer(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: customer_id es requerido", domain.ErrInvalidInput)
	}
	c, err := uc.read.Customers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, id)
	}
	return nil
}

func (uc *UseCase) requireWarehouse(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: warehouse_id es requerido", domain.ErrInvalidInput)
	}
	w, err := uc.read.Warehouses.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if w == nil {
		return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, id)
	}
	return nil
}

// resolveLineItems valida cantidades y completa precio/IVA desde el producto cuando faltan.
func (uc *UseCase) resolveLineItems(ctx context.Context, in []dto.LineItemRequest) ([]entity.LineItem, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("%w: se requiere al menos una línea", domain.ErrInvalidInput)
	}
	items := make([]entity.LineItem, 0, len(in))
	for i, it := range in {
		if !it.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: línea %d: quantity debe ser mayor que cero", domain.ErrInvalidInput, i+1)
		}
		p, err := uc.read.Products.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("%w: línea %d: producto %s", domain.ErrNotFound, i+1, it.ProductID)
		}
		line := entity.LineItem{
			ProductID:   p.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   p.UnitPrice,
			TaxRate:     p.TaxRate,
		}
		if line.Description == "" {
			line.Description = p.Name
		}
		if it.UnitPrice != nil {
			if it.UnitPrice.IsNegative() {
				return nil, fmt.Errorf("%w: línea %d: unit_price negativo", domain.ErrInvalidInput, i+1)
			}
			line.UnitPrice = *it.UnitPrice
		}
		if it.TaxRate != nil {
			if it.TaxRate.IsNegative() || it.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
				return nil, fmt.Errorf("%w: línea %d: tax_rate fuera de rango", domain.ErrInvalidInput, i+1)
			}
			line.TaxRate = *it.TaxRate
		}
		items = append(items, line)
	}
	return items, nil
}

func (uc *UseCase) resolveStockItems(ctx context.Context, in []dto.StockItemRequest) ([]entity.StockItem, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("%w: se requiere al menos una línea", domain.ErrInvalidInput)
	}
	items := make([]entity.StockItem, 0, len(in))
	for i, it := range in {
		if !it.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: línea %d: quantity debe ser mayor que cero", domain.ErrInvalidInput, i+1)
		}
		p, err := uc.read.Products.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("%w: línea %d: producto %s", domain.ErrNotFound, i+1, it.ProductID)
		}
		items = append(items, entity.StockItem{ProductID: p.ID, Quantity: it.Quantity})
	}
	return items, nil
}

func copyLineItems(src []entity.LineItem) []entity.LineItem {
	out := make([]entity.LineItem, len(src))
	for i, it := range src {
		it.ID = ""
		out[i] = it
	}
	return out
}
