package documents_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Documentos-api/internal/application/documents"
	"github.com/jhoicas/Documentos-api/internal/application/dto"
	"github.com/jhoicas/Documentos-api/internal/domain"
	"github.com/jhoicas/Documentos-api/internal/domain/document"
)

func TestTransition_CicloDeCotizacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	qt, err := f.uc.CreateQuotation(ctx, seller, f.quotationRequest())
	require.NoError(t, err)

	res, err := f.uc.Transition(ctx, seller, document.TypeQuotation, qt.ID, document.ActionSubmit)
	require.NoError(t, err)
	assert.Equal(t, "draft", res.From)
	assert.Equal(t, "submitted", res.To)
	assert.Equal(t, qt.Number, res.Number)

	_, err = f.uc.Transition(ctx, seller, document.TypeQuotation, qt.ID, document.ActionSubmit)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "enviar dos veces no es válido")

	_, err = f.uc.Transition(ctx, seller, document.TypeQuotation, qt.ID, document.ActionApprove)
	assert.ErrorIs(t, err, domain.ErrForbidden, "solo el aprobador designado aprueba")

	_, err = f.uc.Transition(ctx, approver, document.TypeQuotation, qt.ID, document.ActionApprove)
	require.NoError(t, err)

	got, err := f.uc.Get(ctx, document.TypeQuotation, qt.ID)
	require.NoError(t, err)
	assert.Equal(t, "approved", got.(*dto.QuotationResponse).Status)

	assert.Equal(t, []string{
		documents.EventCreated,
		documents.EventStatusChanged,
		documents.EventStatusChanged,
	}, f.events.names(), "los intentos fallidos no publican eventos")
}

func TestTransition_AprobacionSinAprobadorDesignado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := f.quotationRequest()
	req.ApproverID = ""
	qt, err := f.uc.CreateQuotation(ctx, seller, req)
	require.NoError(t, err)
	_, err = f.uc.Transition(ctx, seller, document.TypeQuotation, qt.ID, document.ActionSubmit)
	require.NoError(t, err)

	_, err = f.uc.Transition(ctx, approver, document.TypeQuotation, qt.ID, document.ActionApprove)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestTransition_DocumentoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Transition(context.Background(), seller, document.TypeInvoice, "no-existe", document.ActionPay)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransition_PagoDeFactura(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv, err := f.uc.CreateInvoice(ctx, seller, dto.CreateInvoiceRequest{
		CustomerID: f.customer,
		Items:      []dto.LineItemRequest{{ProductID: f.widget, Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)

	res, err := f.uc.Transition(ctx, seller, document.TypeInvoice, inv.ID, document.ActionPay)
	require.NoError(t, err)
	assert.Equal(t, "paid", res.To)

	_, err = f.uc.Transition(ctx, seller, document.TypeInvoice, inv.ID, document.ActionPay)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "paid es terminal")
}

func TestTransition_EntregaDescuentaStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.stockIn(t, f.widget, f.main, 10)

	dn, err := f.uc.CreateDeliveryNote(ctx, seller, dto.CreateDeliveryNoteRequest{
		CustomerID: f.customer, WarehouseID: f.main,
		Items: []dto.StockItemRequest{
			{ProductID: f.widget, Quantity: decimal.NewFromInt(3)},
			{ProductID: f.widget, Quantity: decimal.NewFromInt(4)},
		},
	})
	require.NoError(t, err)
	assert.True(t, f.balance(t, f.widget, f.main).Equal(decimal.NewFromInt(10)), "crear la remisión no mueve stock")

	_, err = f.uc.Transition(ctx, keeper, document.TypeDeliveryNote, dn.ID, document.ActionDeliver)
	require.NoError(t, err)
	assert.True(t, f.balance(t, f.widget, f.main).Equal(decimal.NewFromInt(3)))
}

func TestTransition_EntregaSinStockRevierte(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.stockIn(t, f.widget, f.main, 5)
	f.stockIn(t, f.gadget, f.main, 1)

	dn, err := f.uc.CreateDeliveryNote(ctx, seller, dto.CreateDeliveryNoteRequest{
		CustomerID: f.customer, WarehouseID: f.main,
		Items: []dto.StockItemRequest{
			{ProductID: f.widget, Quantity: decimal.NewFromInt(2)},
			{ProductID: f.gadget, Quantity: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)

	_, err = f.uc.Transition(ctx, keeper, document.TypeDeliveryNote, dn.ID, document.ActionDeliver)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, f.balance(t, f.widget, f.main).Equal(decimal.NewFromInt(5)), "ningún movimiento parcial")
	got, err := f.uc.Get(ctx, document.TypeDeliveryNote, dn.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", got.(*dto.DeliveryNoteResponse).Status, "el estado también se revierte")
}

func TestTransition_TrasladoMueveEntreBodegas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.stockIn(t, f.widget, f.main, 8)

	tr, err := f.uc.CreateTransfer(ctx, keeper, dto.CreateTransferRequest{
		FromWarehouseID: f.main, ToWarehouseID: f.branch,
		Items: []dto.StockItemRequest{{ProductID: f.widget, Quantity: decimal.NewFromInt(5)}},
	})
	require.NoError(t, err)

	_, err = f.uc.Transition(ctx, keeper, document.TypeTransfer, tr.ID, document.ActionComplete)
	require.NoError(t, err)

	assert.True(t, f.balance(t, f.widget, f.main).Equal(decimal.NewFromInt(3)))
	assert.True(t, f.balance(t, f.widget, f.branch).Equal(decimal.NewFromInt(5)))

	_, err = f.uc.Transition(ctx, keeper, document.TypeTransfer, tr.ID, document.ActionComplete)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.True(t, f.balance(t, f.widget, f.branch).Equal(decimal.NewFromInt(5)), "completar dos veces no duplica movimientos")
}

func TestTransition_FalloDelBrokerNoRevierte(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.events.err = errors.New("broker caído")

	inv, err := f.uc.CreateInvoice(ctx, seller, dto.CreateInvoiceRequest{
		CustomerID: f.customer,
		Items:      []dto.LineItemRequest{{ProductID: f.gadget, Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)
	_, err = f.uc.Transition(ctx, seller, document.TypeInvoice, inv.ID, document.ActionPay)
	require.NoError(t, err)

	got, err := f.uc.Get(ctx, document.TypeInvoice, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "paid", got.(*dto.InvoiceResponse).Status)
}

func TestDeleteQuotation_SoloBorrador(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	draft, err := f.uc.CreateQuotation(ctx, seller, f.quotationRequest())
	require.NoError(t, err)
	submitted, err := f.uc.CreateQuotation(ctx, seller, f.quotationRequest())
	require.NoError(t, err)
	_, err = f.uc.Transition(ctx, seller, document.TypeQuotation, submitted.ID, document.ActionSubmit)
	require.NoError(t, err)

	err = f.uc.DeleteQuotation(ctx, seller, submitted.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	require.NoError(t, f.uc.DeleteQuotation(ctx, seller, draft.ID))
	_, err = f.uc.Get(ctx, document.TypeQuotation, draft.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, f.uc.DeleteQuotation(ctx, seller, draft.ID), domain.ErrNotFound)

	p, err := f.uc.PreviewNumber(ctx, document.TypeQuotation)
	require.NoError(t, err)
	assert.Equal(t, "QUO/2025/05/003", p.Number, "el máximo existente sigue siendo 002")
}

func TestDeleteQuotation_NumeracionSigueElMaximo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.uc.CreateQuotation(ctx, seller, f.quotationRequest())
	require.NoError(t, err)
	second, err := f.uc.CreateQuotation(ctx, seller, f.quotationRequest())
	require.NoError(t, err)
	require.Equal(t, "QUO/2025/05/002", second.Number)

	// Borrar el último borrador libera su número: el mes queda sin huecos.
	require.NoError(t, f.uc.DeleteQuotation(ctx, seller, second.ID))
	again, err := f.uc.CreateQuotation(ctx, seller, f.quotationRequest())
	require.NoError(t, err)
	assert.Equal(t, "QUO/2025/05/002", again.Number)

	// Borrar uno intermedio deja el hueco; el siguiente sale del máximo.
	require.NoError(t, f.uc.DeleteQuotation(ctx, seller, first.ID))
	next, err := f.uc.CreateQuotation(ctx, seller, f.quotationRequest())
	require.NoError(t, err)
	assert.Equal(t, "QUO/2025/05/003", next.Number)
}
