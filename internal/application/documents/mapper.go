package documents

import (
	"github.com/jhoicas/Documentos-api/internal/application/dto"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
)

func toHeader(m entity.DocumentMeta) dto.DocumentHeader {
	return dto.DocumentHeader{
		ID:        m.ID,
		Number:    m.Number,
		Status:    string(m.Status),
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toTotals(t entity.Totals) dto.TotalsResponse {
	return dto.TotalsResponse{NetTotal: t.NetTotal, TaxTotal: t.TaxTotal, GrandTotal: t.GrandTotal}
}

func toLineItems(items []entity.LineItem) []dto.LineItemResponse {
	out := make([]dto.LineItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.LineItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			Subtotal:    it.Subtotal,
		})
	}
	return out
}

func toStockItems(items []entity.StockItem) []dto.StockItemResponse {
	out := make([]dto.StockItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.StockItemResponse{ID: it.ID, ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return out
}

func toQuotationResponse(q *entity.Quotation) *dto.QuotationResponse {
	return &dto.QuotationResponse{
		DocumentHeader: toHeader(q.DocumentMeta),
		TotalsResponse: toTotals(q.Totals),
		CustomerID:     q.CustomerID,
		ApproverID:     q.ApproverID,
		Notes:          q.Notes,
		ValidUntil:     q.ValidUntil,
		Items:          toLineItems(q.Items),
	}
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		DocumentHeader: toHeader(inv.DocumentMeta),
		TotalsResponse: toTotals(inv.Totals),
		CustomerID:     inv.CustomerID,
		QuotationID:    inv.QuotationID,
		DueDate:        inv.DueDate,
		Items:          toLineItems(inv.Items),
	}
}

func toDeliveryNoteResponse(dn *entity.DeliveryNote) *dto.DeliveryNoteResponse {
	return &dto.DeliveryNoteResponse{
		DocumentHeader: toHeader(dn.DocumentMeta),
		CustomerID:     dn.CustomerID,
		WarehouseID:    dn.WarehouseID,
		InvoiceID:      dn.InvoiceID,
		Items:          toStockItems(dn.Items),
	}
}

func toTransferResponse(tr *entity.Transfer) *dto.TransferResponse {
	return &dto.TransferResponse{
		DocumentHeader:  toHeader(tr.DocumentMeta),
		FromWarehouseID: tr.FromWarehouseID,
		ToWarehouseID:   tr.ToWarehouseID,
		Notes:           tr.Notes,
		Items:           toStockItems(tr.Items),
	}
}
