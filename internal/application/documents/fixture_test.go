package documents_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Documentos-api/internal/application/documents"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
	"github.com/jhoicas/Documentos-api/internal/domain/rbac"
	"github.com/jhoicas/Documentos-api/internal/infrastructure/memory"
	"github.com/jhoicas/Documentos-api/pkg/logger"
)

var fixedNow = time.Date(2025, time.May, 14, 10, 30, 0, 0, time.UTC)

var (
	seller   = rbac.Subject{UserID: "user-seller", Role: entity.RoleVendedor}
	approver = rbac.Subject{UserID: "user-approver", Role: entity.RoleVendedor}
	keeper   = rbac.Subject{UserID: "user-keeper", Role: entity.RoleBodeguero}
)

// recorder EventPublisher que guarda los eventos; err simula un broker caído.
type recorder struct {
	mu     sync.Mutex
	events []documents.Event
	err    error
}

func (r *recorder) Publish(_ context.Context, evt documents.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return r.err
}

func (r *recorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Name)
	}
	return out
}

// pdfStub PDFRenderer que devuelve el número como contenido.
type pdfStub struct{ last documents.Printable }

func (p *pdfStub) Render(_ context.Context, doc documents.Printable) ([]byte, error) {
	p.last = doc
	if doc.Number == "" {
		return nil, errors.New("sin número")
	}
	return []byte("%PDF " + doc.Number), nil
}

type fixture struct {
	store    *memory.Store
	uc       *documents.UseCase
	events   *recorder
	pdf      *pdfStub
	customer string
	widget   string
	gadget   string
	main     string
	branch   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()

	cust := &entity.Customer{Name: "Ferretería Central", TaxID: "900123456"}
	require.NoError(t, s.Customers().Create(ctx, cust))
	widget := &entity.Product{Code: "W-1", Name: "Widget", UnitPrice: decimal.NewFromInt(10000), TaxRate: decimal.RequireFromString("0.19")}
	require.NoError(t, s.Products().Create(ctx, widget))
	gadget := &entity.Product{Code: "G-1", Name: "Gadget", UnitPrice: decimal.NewFromInt(5000), TaxRate: decimal.Zero}
	require.NoError(t, s.Products().Create(ctx, gadget))
	mainWh := &entity.Warehouse{Code: "MAIN", Name: "Principal"}
	require.NoError(t, s.Warehouses().Create(ctx, mainWh))
	branchWh := &entity.Warehouse{Code: "BR", Name: "Sucursal"}
	require.NoError(t, s.Warehouses().Create(ctx, branchWh))
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: approver.UserID, Email: "aprobador@example.com", Role: entity.RoleVendedor, Status: entity.UserStatusActive}))

	events := &recorder{}
	pdf := &pdfStub{}
	uc := documents.NewUseCase(s, s.Readers(), events, pdf, logger.Nop(),
		documents.WithClock(func() time.Time { return fixedNow }),
		documents.WithIssuerName("Documentos S.A.S."),
	)
	return &fixture{
		store: s, uc: uc, events: events, pdf: pdf,
		customer: cust.ID, widget: widget.ID, gadget: gadget.ID,
		main: mainWh.ID, branch: branchWh.ID,
	}
}

func (f *fixture) stockIn(t *testing.T, productID, warehouseID string, qty int64) {
	t.Helper()
	require.NoError(t, f.store.Movements().Append(context.Background(), &entity.StockMovement{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    decimal.NewFromInt(qty),
		SourceType:  entity.MovementSourceImport,
		CreatedBy:   keeper.UserID,
		CreatedAt:   fixedNow,
	}))
}

func (f *fixture) balance(t *testing.T, productID, warehouseID string) decimal.Decimal {
	t.Helper()
	b, err := f.store.Movements().Balance(context.Background(), productID, warehouseID)
	require.NoError(t, err)
	return b
}
