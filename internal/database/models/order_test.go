package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/EgehanKilicarslan/bookstore/internal/database/models"
)

func TestOrderStatus_Transitions(t *testing.T) {
	tests := []struct {
		from models.OrderStatus
		to   models.OrderStatus
		want bool
	}{
		{models.OrderStatusPending, models.OrderStatusPaid, true},
		{models.OrderStatusPending, models.OrderStatusCancelled, true},
		{models.OrderStatusPaid, models.OrderStatusShipped, true},
		{models.OrderStatusPending, models.OrderStatusShipped, false},
		{models.OrderStatusPending, models.OrderStatusPending, false},
		{models.OrderStatusPaid, models.OrderStatusCancelled, false},
		{models.OrderStatusPaid, models.OrderStatusPending, false},
		{models.OrderStatusShipped, models.OrderStatusCancelled, false},
		{models.OrderStatusCancelled, models.OrderStatusPaid, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.False(t, models.OrderStatusPending.IsTerminal())
	assert.False(t, models.OrderStatusPaid.IsTerminal())
	assert.True(t, models.OrderStatusShipped.IsTerminal())
	assert.True(t, models.OrderStatusCancelled.IsTerminal())
}

func TestParseOrderStatus(t *testing.T) {
	status, ok := models.ParseOrderStatus("PAID")
	assert.True(t, ok)
	assert.Equal(t, models.OrderStatusPaid, status)

	for _, raw := range []string{"", "paid", "REFUNDED"} {
		_, ok := models.ParseOrderStatus(raw)
		assert.False(t, ok, raw)
	}
}

func TestOrderItem_Subtotal(t *testing.T) {
	item := models.OrderItem{Quantity: 3, Price: 5000}
	assert.Equal(t, int64(15000), item.Subtotal())
}

func TestRole_ScanAndValue(t *testing.T) {
	var role models.Role
	assert.NoError(t, role.Scan([]byte("ADMIN")))
	assert.Equal(t, models.RoleAdmin, role)

	assert.NoError(t, role.Scan(nil))
	assert.Equal(t, models.RoleUser, role)

	assert.Error(t, role.Scan(42))

	v, err := models.RoleAdmin.Value()
	assert.NoError(t, err)
	assert.Equal(t, "ADMIN", v)
}
