package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Documentos-api/internal/application/documents"
	"github.com/jhoicas/Documentos-api/internal/domain/document"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0,00", formatMoney(decimal.Zero))
	assert.Equal(t, "$25.000,00", formatMoney(decimal.NewFromInt(25000)))
	assert.Equal(t, "$1.234.567,89", formatMoney(decimal.RequireFromString("1234567.891")))
	assert.Equal(t, "-$300,50", formatMoney(decimal.RequireFromString("-300.5")))
}

func TestFormatQuantityAndRate(t *testing.T) {
	assert.Equal(t, "1.500", formatQuantity(decimal.NewFromInt(1500)))
	assert.Equal(t, "2,5", formatQuantity(decimal.RequireFromString("2.5")))
	assert.Equal(t, "19%", formatRate(decimal.RequireFromString("0.19")))
	assert.Equal(t, "0%", formatRate(decimal.Zero))
}

func TestRender_GeneraPDF(t *testing.T) {
	due := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	doc := documents.Printable{
		Type:       document.TypeQuotation,
		Title:      "COTIZACIÓN",
		Number:     "QUO/2025/05/001",
		Status:     document.StatusDraft,
		Date:       time.Date(2025, 5, 14, 0, 0, 0, 0, time.UTC),
		DueDate:    &due,
		Customer:   &entity.Customer{Name: "Ferretería Central", TaxID: "900123456"},
		Notes:      "Precios sujetos a disponibilidad",
		IssuerName: "Documentos S.A.S.",
		Lines: []documents.PrintLine{{
			Code: "W-1", Description: "Widget",
			Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(10000),
			TaxRate: decimal.RequireFromString("0.19"), Subtotal: decimal.NewFromInt(20000),
		}},
		Totals: entity.Totals{NetTotal: decimal.NewFromInt(20000), TaxTotal: decimal.NewFromInt(3800), GrandTotal: decimal.NewFromInt(23800)},
	}

	out, err := NewMarotoPDFGenerator().Render(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un PDF")
}

func TestRender_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMarotoPDFGenerator().Render(ctx, documents.Printable{})
	assert.ErrorIs(t, err, context.Canceled)
}
