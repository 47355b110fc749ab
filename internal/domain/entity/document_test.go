package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Documentos-api/internal/domain/entity"
)

func TestCalculateTotals(t *testing.T) {
	items := []entity.LineItem{
		{Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(10000), TaxRate: decimal.RequireFromString("0.19")},
		{Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(5000), TaxRate: decimal.Zero},
	}
	tot := entity.CalculateTotals(items)

	assert.True(t, items[0].Subtotal.Equal(decimal.NewFromInt(20000)))
	assert.True(t, items[1].Subtotal.Equal(decimal.NewFromInt(15000)))
	assert.True(t, tot.NetTotal.Equal(decimal.NewFromInt(35000)))
	assert.True(t, tot.TaxTotal.Equal(decimal.NewFromInt(3800)))
	assert.True(t, tot.GrandTotal.Equal(decimal.NewFromInt(38800)))
}

func TestCalculateTotals_SinLineas(t *testing.T) {
	tot := entity.CalculateTotals(nil)
	assert.True(t, tot.GrandTotal.IsZero())
}
