package documents_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Documentos-api/internal/application/dto"
	"github.com/jhoicas/Documentos-api/internal/domain"
	"github.com/jhoicas/Documentos-api/internal/domain/document"
)

func TestList_PaginaPorTipo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := f.uc.CreateQuotation(ctx, seller, f.quotationRequest())
		require.NoError(t, err)
	}

	out, err := f.uc.List(ctx, document.TypeQuotation, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	list := out.(dto.ListResponse[dto.QuotationResponse])
	require.Len(t, list.Items, 2)
	assert.Equal(t, "QUO/2025/05/003", list.Items[0].Number)
	assert.Equal(t, 2, list.Page.Limit)

	out, err = f.uc.List(ctx, document.TypeTransfer, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, out.(dto.ListResponse[dto.TransferResponse]).Items)

	_, err = f.uc.List(ctx, document.Type("receipt"), dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRenderPDF(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv, err := f.uc.CreateInvoice(ctx, seller, dto.CreateInvoiceRequest{
		CustomerID: f.customer,
		Items:      []dto.LineItemRequest{{ProductID: f.widget, Quantity: decimal.NewFromInt(2)}},
	})
	require.NoError(t, err)

	out, name, err := f.uc.RenderPDF(ctx, document.TypeInvoice, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "INV-2025-05-001.pdf", name)
	assert.Equal(t, "%PDF INV/2025/05/001", string(out))
	assert.Equal(t, "Documentos S.A.S.", f.pdf.last.IssuerName)
	require.Len(t, f.pdf.last.Lines, 1)
	assert.Equal(t, "W-1", f.pdf.last.Lines[0].Code)
	assert.Equal(t, "Ferretería Central", f.pdf.last.Customer.Name)

	_, _, err = f.uc.RenderPDF(ctx, document.TypeTransfer, "x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "solo cotizaciones y facturas tienen PDF")

	_, _, err = f.uc.RenderPDF(ctx, document.TypeQuotation, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
