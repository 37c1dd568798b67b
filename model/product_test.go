package models

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductValidation(t *testing.T) {
	w := decimal.RequireFromString("0.2")
	cases := []struct {
		name  string
		attrs Attrs
		w     decimal.Decimal
	}{
		{"empty name", Attrs{Name: "", UnitPrice: decimal.NewFromInt(1), Stock: 1}, w},
		{"negative price", Attrs{Name: "x", UnitPrice: decimal.NewFromInt(-1), Stock: 1}, w},
		{"negative stock", Attrs{Name: "x", UnitPrice: decimal.NewFromInt(1), Stock: -1}, w},
		{"zero weight", Attrs{Name: "x", UnitPrice: decimal.NewFromInt(1), Stock: 1}, decimal.Zero},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewShippable(tc.attrs, tc.w)
			assert.True(t, errors.Is(err, ErrInvalidProduct), "got %v", err)
		})
	}

	_, err := NewProduct(Kind("gift"), Attrs{Name: "x"}, w, time.Time{})
	assert.True(t, errors.Is(err, ErrInvalidProduct))

	d, err := NewProduct(KindDigital, Attrs{Name: "Scratch Card", UnitPrice: decimal.NewFromInt(50), Stock: 100}, decimal.Zero, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, KindDigital, d.Kind())
}

func TestCapabilities(t *testing.T) {
	now := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	cheese, err := NewPerishable(Attrs{Name: "Cheese", UnitPrice: decimal.NewFromInt(100), Stock: 10}, decimal.RequireFromString("0.2"), now)
	require.NoError(t, err)
	biscuits, err := NewShippable(Attrs{Name: "Biscuits", UnitPrice: decimal.NewFromInt(150), Stock: 5}, decimal.RequireFromString("0.7"))
	require.NoError(t, err)
	card, err := NewDigital(Attrs{Name: "Scratch Card", UnitPrice: decimal.NewFromInt(50), Stock: 100})
	require.NoError(t, err)

	// expiry is strict
	assert.False(t, cheese.IsExpired(now))
	assert.True(t, cheese.IsExpired(now.Add(time.Nanosecond)))
	assert.False(t, biscuits.IsExpired(now.AddDate(100, 0, 0)))
	assert.False(t, card.IsExpired(now.AddDate(100, 0, 0)))

	for _, p := range []Product{cheese, biscuits} {
		s, ok := AsShippable(p)
		require.True(t, ok, p.Name())
		assert.Equal(t, p.Name(), s.Name())
		assert.True(t, s.UnitWeightKg().IsPositive())
	}
	_, ok := AsShippable(card)
	assert.False(t, ok)
}

func TestReduceStock(t *testing.T) {
	p, err := NewShippable(Attrs{Name: "TV", UnitPrice: decimal.NewFromInt(1000), Stock: 3}, decimal.NewFromInt(10))
	require.NoError(t, err)

	require.NoError(t, p.ReduceStock(2))
	assert.Equal(t, 1, p.Stock())

	assert.True(t, errors.Is(p.ReduceStock(2), ErrInsufficientStock))
	assert.Equal(t, 1, p.Stock())

	assert.True(t, errors.Is(p.ReduceStock(0), ErrInvalidQuantity))
	require.NoError(t, p.ReduceStock(1))
	assert.Equal(t, 0, p.Stock())
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "Cart is empty.", ErrEmptyCart.Error())
	assert.Equal(t, "Cheese is expired.", Expired("Cheese").Error())
	assert.Equal(t, "TV is out of stock.", OutOfStock("TV").Error())
	assert.Equal(t, "Insufficient stock.", ErrInsufficientStock.Error())
	assert.Equal(t, "Insufficient balance.", ErrInsufficientBalance.Error())
	assert.Equal(t, "Insufficient customer balance.", ErrCustomerBalance.Error())

	assert.True(t, errors.Is(Expired("Cheese"), ErrExpired))
	assert.True(t, errors.Is(OutOfStock("TV"), ErrOutOfStock))
	assert.True(t, errors.Is(ErrCustomerBalance, ErrInsufficientBalance))

	var pe *ProductError
	require.True(t, errors.As(Expired("Cheese"), &pe))
	assert.Equal(t, "Cheese", pe.Product)
}
