package shopping

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/shared"
)

func createTestCart(t *testing.T) *Cart {
	cart, err := NewCart(uuid.New())
	require.NoError(t, err)
	return cart
}

func TestNewCart(t *testing.T) {
	accountID := uuid.New()
	cart, err := NewCart(accountID)
	require.NoError(t, err)
	assert.Equal(t, accountID, cart.AccountID)
	assert.Empty(t, cart.Items)
	assert.NotEqual(t, uuid.Nil, cart.ID)
}

func TestNewCart_EmptyAccount(t *testing.T) {
	_, err := NewCart(uuid.Nil)
	assert.Error(t, err)
}

func TestCart_AddItem(t *testing.T) {
	cart := createTestCart(t)
	productID := uuid.New()

	item, err := cart.AddItem(productID, "T-Shirt", decimal.NewFromInt(500), decimal.Zero, 2, "M")
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
	assert.Len(t, cart.Items, 1)
}

func TestCart_AddItem_FoldsExistingLine(t *testing.T) {
	cart := createTestCart(t)
	productID := uuid.New()

	_, err := cart.AddItem(productID, "T-Shirt", decimal.NewFromInt(500), decimal.Zero, 2, "M")
	require.NoError(t, err)
	item, err := cart.AddItem(productID, "T-Shirt", decimal.NewFromInt(450), decimal.Zero, 3, "")
	require.NoError(t, err)

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 5, item.Quantity)
	// price snapshot refreshed, size preserved
	assert.True(t, item.UnitPrice.Equal(decimal.NewFromInt(450)))
	assert.Equal(t, "M", item.Size)
}

func TestCart_AddItem_Validation(t *testing.T) {
	cart := createTestCart(t)

	tests := []struct {
		name      string
		productID uuid.UUID
		unitPrice decimal.Decimal
		salePrice decimal.Decimal
		quantity  int
	}{
		{"nil product", uuid.Nil, decimal.NewFromInt(100), decimal.Zero, 1},
		{"zero quantity", uuid.New(), decimal.NewFromInt(100), decimal.Zero, 0},
		{"zero price", uuid.New(), decimal.Zero, decimal.Zero, 1},
		{"negative sale price", uuid.New(), decimal.NewFromInt(100), decimal.NewFromInt(-1), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cart.AddItem(tt.productID, "X", tt.unitPrice, tt.salePrice, tt.quantity, "")
			assert.Error(t, err)
		})
	}
}

func TestCart_SetQuantity(t *testing.T) {
	cart := createTestCart(t)
	productID := uuid.New()
	_, err := cart.AddItem(productID, "T-Shirt", decimal.NewFromInt(500), decimal.Zero, 2, "")
	require.NoError(t, err)

	require.NoError(t, cart.SetQuantity(productID, 4, 10))
	assert.Equal(t, 4, cart.Item(productID).Quantity)
}

func TestCart_SetQuantity_ExceedsStock(t *testing.T) {
	cart := createTestCart(t)
	productID := uuid.New()
	_, err := cart.AddItem(productID, "T-Shirt", decimal.NewFromInt(500), decimal.Zero, 2, "")
	require.NoError(t, err)

	err = cart.SetQuantity(productID, 4, 3)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	assert.Equal(t, 2, cart.Item(productID).Quantity)
}

func TestCart_SetQuantity_MissingItem(t *testing.T) {
	cart := createTestCart(t)
	err := cart.SetQuantity(uuid.New(), 1, 10)
	assert.Error(t, err)
}

func TestCart_MergeLine_NewProduct(t *testing.T) {
	cart := createTestCart(t)
	line := SessionLine{
		ProductID: uuid.New(),
		Title:     "Hoodie",
		UnitPrice: decimal.NewFromInt(1200),
		Quantity:  1,
	}

	require.NoError(t, cart.MergeLine(line))
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCart_MergeLine_FoldsQuantities(t *testing.T) {
	cart := createTestCart(t)
	productID := uuid.New()
	_, err := cart.AddItem(productID, "Hoodie", decimal.NewFromInt(1200), decimal.Zero, 2, "")
	require.NoError(t, err)

	line := SessionLine{
		ProductID: productID,
		Title:     "Hoodie",
		UnitPrice: decimal.NewFromInt(1100),
		Quantity:  3,
	}
	require.NoError(t, cart.MergeLine(line))

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	// merge keeps the account snapshot price, it only folds quantity
	assert.True(t, cart.Items[0].UnitPrice.Equal(decimal.NewFromInt(1200)))
}

func TestCart_MergeLine_NoStockCeiling(t *testing.T) {
	cart := createTestCart(t)
	line := SessionLine{
		ProductID: uuid.New(),
		Title:     "Rare item",
		UnitPrice: decimal.NewFromInt(99),
		Quantity:  1000,
	}

	require.NoError(t, cart.MergeLine(line))
	assert.Equal(t, 1000, cart.Items[0].Quantity)
}

func TestCart_MergeLine_InvalidLine(t *testing.T) {
	cart := createTestCart(t)
	err := cart.MergeLine(SessionLine{ProductID: uuid.New(), Quantity: 0, UnitPrice: decimal.NewFromInt(10)})
	assert.Error(t, err)
	assert.Empty(t, cart.Items)
}

func TestCart_RemoveItem(t *testing.T) {
	cart := createTestCart(t)
	productID := uuid.New()
	_, err := cart.AddItem(productID, "T-Shirt", decimal.NewFromInt(500), decimal.Zero, 1, "")
	require.NoError(t, err)

	require.NoError(t, cart.RemoveItem(productID))
	assert.Empty(t, cart.Items)

	assert.Error(t, cart.RemoveItem(productID))
}

func TestCart_Clear(t *testing.T) {
	cart := createTestCart(t)
	_, err := cart.AddItem(uuid.New(), "A", decimal.NewFromInt(100), decimal.Zero, 1, "")
	require.NoError(t, err)
	_, err = cart.AddItem(uuid.New(), "B", decimal.NewFromInt(200), decimal.Zero, 2, "")
	require.NoError(t, err)

	cart.Clear()
	assert.Empty(t, cart.Items)
}

func TestCart_Subtotal(t *testing.T) {
	cart := createTestCart(t)
	_, err := cart.AddItem(uuid.New(), "A", decimal.NewFromInt(500), decimal.Zero, 2, "")
	require.NoError(t, err)
	// sale price wins when positive
	_, err = cart.AddItem(uuid.New(), "B", decimal.NewFromInt(300), decimal.NewFromInt(250), 1, "")
	require.NoError(t, err)

	assert.True(t, cart.Subtotal().Equal(decimal.NewFromInt(1250)), "got %s", cart.Subtotal())
}

func TestCartItem_EffectivePrice(t *testing.T) {
	item := CartItem{UnitPrice: decimal.NewFromInt(100), SalePrice: decimal.Zero, Quantity: 3}
	assert.True(t, item.EffectivePrice().Equal(decimal.NewFromInt(100)))
	assert.True(t, item.Amount().Equal(decimal.NewFromInt(300)))

	item.SalePrice = decimal.NewFromInt(80)
	assert.True(t, item.EffectivePrice().Equal(decimal.NewFromInt(80)))
	assert.True(t, item.Amount().Equal(decimal.NewFromInt(240)))
}

func TestSessionLine_Validate(t *testing.T) {
	valid := SessionLine{ProductID: uuid.New(), UnitPrice: decimal.NewFromInt(10), Quantity: 1}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		line SessionLine
	}{
		{"nil product", SessionLine{UnitPrice: decimal.NewFromInt(10), Quantity: 1}},
		{"zero quantity", SessionLine{ProductID: uuid.New(), UnitPrice: decimal.NewFromInt(10)}},
		{"zero price", SessionLine{ProductID: uuid.New(), Quantity: 1}},
		{"negative sale price", SessionLine{ProductID: uuid.New(), UnitPrice: decimal.NewFromInt(10), SalePrice: decimal.NewFromInt(-1), Quantity: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.line.Validate())
		})
	}
}
