package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Documentos-api/internal/application/dto"
	"github.com/jhoicas/Documentos-api/internal/application/usecase"
	"github.com/jhoicas/Documentos-api/internal/domain"
	"github.com/jhoicas/Documentos-api/internal/infrastructure/memory"
)

func TestProductUseCase(t *testing.T) {
	s := memory.NewStore()
	uc := usecase.NewProductUseCase(s.Products())
	ctx := context.Background()

	p, err := uc.Create(ctx, dto.CreateProductRequest{Code: " W-1 ", Name: "Widget", UnitPrice: decimal.NewFromInt(100), TaxRate: decimal.RequireFromString("0.19")})
	require.NoError(t, err)
	assert.Equal(t, "W-1", p.Code)
	assert.Equal(t, "94", p.UnitMeasure, "unidad por defecto")

	_, err = uc.Create(ctx, dto.CreateProductRequest{Code: "W-1", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Code: "X", Name: "IVA raro", TaxRate: decimal.RequireFromString("0.16")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	name := "Widget Pro"
	price := decimal.NewFromInt(150)
	up, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: &name, UnitPrice: &price})
	require.NoError(t, err)
	assert.Equal(t, "Widget Pro", up.Name)
	assert.True(t, up.UnitPrice.Equal(price))

	_, err = uc.Update(ctx, "no-existe", dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 20, list.Page.Limit)
}

func TestWarehouseAndCustomerUseCase(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()

	wuc := usecase.NewWarehouseUseCase(s.Warehouses())
	w, err := wuc.Create(ctx, dto.CreateWarehouseRequest{Code: "MAIN", Name: "Principal"})
	require.NoError(t, err)
	got, err := wuc.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Principal", got.Name)
	_, err = wuc.Create(ctx, dto.CreateWarehouseRequest{Code: "MAIN", Name: "Duplicada"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	cuc := usecase.NewCustomerUseCase(s.Customers())
	c, err := cuc.Create(ctx, dto.CreateCustomerRequest{Name: "Ferretería", TaxID: "900123456"})
	require.NoError(t, err)
	_, err = cuc.Create(ctx, dto.CreateCustomerRequest{Name: "Otra", TaxID: "900123456"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = cuc.Create(ctx, dto.CreateCustomerRequest{Name: "Constructora", TaxID: "900.123.456-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "dígito de verificación incorrecto")
	_, err = cuc.Create(ctx, dto.CreateCustomerRequest{Name: "Constructora", TaxID: "900.123.456-8"})
	require.NoError(t, err)
	_, err = cuc.GetByID(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := cuc.List(ctx, dto.PageRequest{Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 100, list.Page.Limit)
	require.Len(t, list.Items, 2)
	assert.Contains(t, []string{list.Items[0].ID, list.Items[1].ID}, c.ID)
}
