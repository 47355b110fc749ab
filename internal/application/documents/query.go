package documents

import (
	"context"
	"fmt"

	"github.com/jhoicas/Documentos-api/internal/application/dto"
	"github.com/jhoicas/Documentos-api/internal/domain"
	"github.com/jhoicas/Documentos-api/internal/domain/document"
)

// Get devuelve el documento t con sus líneas como DTO del tipo correspondiente.
func (uc *UseCase) Get(ctx context.Context, t document.Type, id string) (any, error) {
	switch t {
	case document.TypeQuotation:
		qt, err := uc.read.Quotations.GetByID(ctx, id)
		if err != nil || qt == nil {
			return nil, notFound(err)
		}
		return toQuotationResponse(qt), nil
	case document.TypeInvoice:
		inv, err := uc.read.Invoices.GetByID(ctx, id)
		if err != nil || inv == nil {
			return nil, notFound(err)
		}
		return toInvoiceResponse(inv), nil
	case document.TypeDeliveryNote:
		dn, err := uc.read.DeliveryNotes.GetByID(ctx, id)
		if err != nil || dn == nil {
			return nil, notFound(err)
		}
		return toDeliveryNoteResponse(dn), nil
	case document.TypeTransfer:
		tr, err := uc.read.Transfers.GetByID(ctx, id)
		if err != nil || tr == nil {
			return nil, notFound(err)
		}
		return toTransferResponse(tr), nil
	}
	return nil, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, t)
}

// List devuelve una página de documentos del tipo t, más recientes primero.
func (uc *UseCase) List(ctx context.Context, t document.Type, page dto.PageRequest) (any, error) {
	page.DefaultPage()
	meta := dto.PageResponse{Limit: page.Limit, Offset: page.Offset}
	switch t {
	case document.TypeQuotation:
		list, err := uc.read.Quotations.List(ctx, page.Limit, page.Offset)
		if err != nil {
			return nil, err
		}
		out := dto.ListResponse[dto.QuotationResponse]{Items: make([]dto.QuotationResponse, 0, len(list)), Page: meta}
		for _, qt := range list {
			out.Items = append(out.Items, *toQuotationResponse(qt))
		}
		return out, nil
	case document.TypeInvoice:
		list, err := uc.read.Invoices.List(ctx, page.Limit, page.Offset)
		if err != nil {
			return nil, err
		}
		out := dto.ListResponse[dto.InvoiceResponse]{Items: make([]dto.InvoiceResponse, 0, len(list)), Page: meta}
		for _, inv := range list {
			out.Items = append(out.Items, *toInvoiceResponse(inv))
		}
		return out, nil
	case document.TypeDeliveryNote:
		list, err := uc.read.DeliveryNotes.List(ctx, page.Limit, page.Offset)
		if err != nil {
			return nil, err
		}
		out := dto.ListResponse[dto.DeliveryNoteResponse]{Items: make([]dto.DeliveryNoteResponse, 0, len(list)), Page: meta}
		for _, dn := range list {
			out.Items = append(out.Items, *toDeliveryNoteResponse(dn))
		}
		return out, nil
	case document.TypeTransfer:
		list, err := uc.read.Transfers.List(ctx, page.Limit, page.Offset)
		if err != nil {
			return nil, err
		}
		out := dto.ListResponse[dto.TransferResponse]{Items: make([]dto.TransferResponse, 0, len(list)), Page: meta}
		for _, tr := range list {
			out.Items = append(out.Items, *toTransferResponse(tr))
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, t)
}

func notFound(err error) error {
	if err != nil {
		return err
	}
	return domain.ErrNotFound
}
