package documents

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Documentos-api/internal/domain"
	"github.com/jhoicas/Documentos-api/internal/domain/document"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
)

// RenderPDF genera la representación impresa de una cotización o factura.
// Devuelve los bytes y un nombre de archivo derivado del número.
func (uc *UseCase) RenderPDF(ctx context.Context, t document.Type, id string) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("%w: generador PDF no configurado", domain.ErrStoreUnavailable)
	}
	var doc Printable
	switch t {
	case document.TypeQuotation:
		qt, err := uc.read.Quotations.GetByID(ctx, id)
		if err != nil || qt == nil {
			return nil, "", notFound(err)
		}
		doc = Printable{
			Type:    t,
			Title:   "COTIZACIÓN",
			Number:  qt.Number,
			Status:  qt.Status,
			Date:    qt.CreatedAt,
			DueDate: qt.ValidUntil,
			Notes:   qt.Notes,
			Totals:  qt.Totals,
		}
		if err := uc.fillPrintable(ctx, &doc, qt.CustomerID, qt.Items); err != nil {
			return nil, "", err
		}
	case document.TypeInvoice:
		inv, err := uc.read.Invoices.GetByID(ctx, id)
		if err != nil || inv == nil {
			return nil, "", notFound(err)
		}
		doc = Printable{
			Type:    t,
			Title:   "FACTURA DE VENTA",
			Number:  inv.Number,
			Status:  inv.Status,
			Date:    inv.CreatedAt,
			DueDate: inv.DueDate,
			Totals:  inv.Totals,
		}
		if err := uc.fillPrintable(ctx, &doc, inv.CustomerID, inv.Items); err != nil {
			return nil, "", err
		}
	default:
		return nil, "", fmt.Errorf("%w: el tipo %s no tiene representación PDF", domain.ErrInvalidInput, t)
	}
	doc.IssuerName = uc.issuerName

	out, err := uc.pdf.Render(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("renderizar %s: %w", doc.Number, err)
	}
	return out, fileName(doc.Number), nil
}

func (uc *UseCase) fillPrintable(ctx context.Context, doc *Printable, customerID string, items []entity.LineItem) error {
	c, err := uc.read.Customers.GetByID(ctx, customerID)
	if err != nil {
		return err
	}
	doc.Customer = c
	doc.Lines = make([]PrintLine, 0, len(items))
	codes := make(map[string]string, len(items))
	for _, it := range items {
		code, ok := codes[it.ProductID]
		if !ok {
			p, err := uc.read.Products.GetByID(ctx, it.ProductID)
			if err != nil {
				return err
			}
			if p != nil {
				code = p.Code
			}
			codes[it.ProductID] = code
		}
		doc.Lines = append(doc.Lines, PrintLine{
			Code:        code,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			Subtotal:    it.Subtotal,
		})
	}
	return nil
}

// fileName convierte "INV/2025/05/003" en "INV-2025-05-003.pdf".
func fileName(number string) string {
	return strings.ReplaceAll(number, "/", "-") + ".pdf"
}
