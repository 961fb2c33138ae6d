package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSale_QuantityDefault(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		want     int
	}{
		{name: "absent quantity defaults to one", quantity: 0, want: 1},
		{name: "negative quantity defaults to one", quantity: -3, want: 1},
		{name: "explicit quantity kept", quantity: 4, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSale(7, "charger", tt.quantity, decimal.NewFromInt(500), decimal.NewFromInt(120), "2025-08-14T10:30:00", false)
			assert.Equal(t, tt.want, s.Quantity)
		})
	}
}

func TestSale_DraftAndApply(t *testing.T) {
	s := NewSale(7, "charger", 2, decimal.NewFromInt(500), decimal.NewFromInt(120), "2025-08-14T10:30:00", false)
	s.ID = 11

	draft := s.Draft()
	require.NotNil(t, draft.TotalPrice)
	assert.True(t, draft.TotalPrice.Equal(decimal.NewFromInt(500)))

	// Mutating the draft must not touch the record until Apply.
	newPrice := decimal.NewFromInt(650)
	draft.TotalPrice = &newPrice
	draft.AccessoryName = "fast charger"
	assert.Equal(t, "charger", s.AccessoryName)
	assert.True(t, s.TotalPrice.Equal(decimal.NewFromInt(500)))

	s.Apply(draft)
	assert.Equal(t, "fast charger", s.AccessoryName)
	assert.True(t, s.TotalPrice.Equal(decimal.NewFromInt(650)))
}

func TestResolveClientName(t *testing.T) {
	clients := []Client{{ID: 1, Name: "Asha Traders"}, {ID: 2, Name: "Verma Stores"}}

	assert.Equal(t, "Verma Stores", ResolveClientName(clients, 2))
	assert.Equal(t, UnknownClientName, ResolveClientName(clients, 99))
	assert.Equal(t, UnknownClientName, ResolveClientName(nil, 1))
}
