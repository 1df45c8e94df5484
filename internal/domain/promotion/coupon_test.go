package promotion

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCoupon(t *testing.T) {
	coupon, err := NewCoupon("SAVE15", 15, nil)
	require.NoError(t, err)
	assert.Equal(t, "SAVE15", coupon.Code)
	assert.Equal(t, 15, coupon.DiscountPercentage)
	assert.True(t, coupon.IsActive)
	assert.Nil(t, coupon.ExpiryDate)
}

func TestNewCoupon_Validation(t *testing.T) {
	tests := []struct {
		name string
		code string
		pct  int
	}{
		{"empty code", "", 10},
		{"zero discount", "X", 0},
		{"over 100", "X", 101},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCoupon(tt.code, tt.pct, nil)
			assert.Error(t, err)
		})
	}
}

func TestCoupon_IsExpired(t *testing.T) {
	now := time.Now()

	noExpiry, err := NewCoupon("FOREVER", 10, nil)
	require.NoError(t, err)
	assert.False(t, noExpiry.IsExpired(now))

	past := now.Add(-time.Hour)
	expired, err := NewCoupon("LAPSED", 10, &past)
	require.NoError(t, err)
	assert.True(t, expired.IsExpired(now))

	future := now.Add(time.Hour)
	live, err := NewCoupon("LIVE", 10, &future)
	require.NoError(t, err)
	assert.False(t, live.IsExpired(now))
}

func TestCoupon_DiscountOn(t *testing.T) {
	coupon, err := NewCoupon("SAVE15", 15, nil)
	require.NoError(t, err)

	tests := []struct {
		subtotal string
		want     string
	}{
		{"1000", "150"},
		{"999", "149.85"},
		{"0", "0"},
		{"333.33", "50"}, // 49.9995 rounds to 50.00
	}
	for _, tt := range tests {
		t.Run(tt.subtotal, func(t *testing.T) {
			subtotal, err := decimal.NewFromString(tt.subtotal)
			require.NoError(t, err)
			want, err := decimal.NewFromString(tt.want)
			require.NoError(t, err)
			got := coupon.DiscountOn(subtotal)
			assert.True(t, got.Equal(want), "got %s want %s", got, want)
		})
	}
}

func TestCoupon_ActivateDeactivate(t *testing.T) {
	coupon, err := NewCoupon("TOGGLE", 10, nil)
	require.NoError(t, err)

	coupon.Deactivate()
	assert.False(t, coupon.IsActive)
	coupon.Activate()
	assert.True(t, coupon.IsActive)
}

func TestCoupon_Update(t *testing.T) {
	coupon, err := NewCoupon("EDIT", 10, nil)
	require.NoError(t, err)

	future := time.Now().Add(48 * time.Hour)
	require.NoError(t, coupon.Update(25, &future))
	assert.Equal(t, 25, coupon.DiscountPercentage)
	require.NotNil(t, coupon.ExpiryDate)

	assert.Error(t, coupon.Update(0, nil))
}
