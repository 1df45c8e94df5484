package catalog

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	p, err := NewProduct("T-Shirt", "Plain cotton tee", decimal.NewFromInt(500), decimal.Zero, 10)
	require.NoError(t, err)
	assert.Equal(t, "T-Shirt", p.Title)
	assert.Equal(t, 10, p.TotalStock)
	assert.False(t, p.OnSale())
}

func TestNewProduct_Validation(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		price     decimal.Decimal
		salePrice decimal.Decimal
		stock     int
	}{
		{"empty title", "", decimal.NewFromInt(100), decimal.Zero, 1},
		{"long title", strings.Repeat("x", 201), decimal.NewFromInt(100), decimal.Zero, 1},
		{"zero price", "X", decimal.Zero, decimal.Zero, 1},
		{"negative sale price", "X", decimal.NewFromInt(100), decimal.NewFromInt(-1), 1},
		{"sale above regular", "X", decimal.NewFromInt(100), decimal.NewFromInt(150), 1},
		{"negative stock", "X", decimal.NewFromInt(100), decimal.Zero, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProduct(tt.title, "", tt.price, tt.salePrice, tt.stock)
			assert.Error(t, err)
		})
	}
}

func TestProduct_EffectivePrice(t *testing.T) {
	p, err := NewProduct("Hoodie", "", decimal.NewFromInt(1500), decimal.Zero, 5)
	require.NoError(t, err)
	assert.True(t, p.EffectivePrice().Equal(decimal.NewFromInt(1500)))

	require.NoError(t, p.UpdatePricing(decimal.NewFromInt(1500), decimal.NewFromInt(1200)))
	assert.True(t, p.EffectivePrice().Equal(decimal.NewFromInt(1200)))
	assert.True(t, p.OnSale())
}

func TestProduct_UpdatePricing_SaleAboveRegular(t *testing.T) {
	p, err := NewProduct("Hoodie", "", decimal.NewFromInt(1500), decimal.Zero, 5)
	require.NoError(t, err)

	err = p.UpdatePricing(decimal.NewFromInt(1000), decimal.NewFromInt(1100))
	assert.Error(t, err)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(1500)))
}

func TestProduct_SetStock(t *testing.T) {
	p, err := NewProduct("Hoodie", "", decimal.NewFromInt(1500), decimal.Zero, 5)
	require.NoError(t, err)

	require.NoError(t, p.SetStock(0))
	assert.Equal(t, 0, p.TotalStock)
	assert.Error(t, p.SetStock(-1))
}

func TestProduct_HasStock(t *testing.T) {
	p, err := NewProduct("Hoodie", "", decimal.NewFromInt(1500), decimal.Zero, 3)
	require.NoError(t, err)

	assert.True(t, p.HasStock(3))
	assert.False(t, p.HasStock(4))
	assert.False(t, p.HasStock(0))
}
