package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tayyabfareed009/Ecommerce-Application/internal/domain"
)

type mockOrdersAPI struct {
	orders []domain.Order
	err    error
}

func (m *mockOrdersAPI) Orders(context.Context) ([]domain.Order, error) {
	return m.orders, m.err
}

func (m *mockOrdersAPI) Order(context.Context, string) (domain.Order, error) {
	if len(m.orders) == 0 {
		return domain.Order{}, m.err
	}
	return m.orders[0], m.err
}

func (m *mockOrdersAPI) UpdateOrder(context.Context, string, string) error { return m.err }
func (m *mockOrdersAPI) DeleteOrder(context.Context, string) error         { return m.err }
func (m *mockOrdersAPI) DeleteOrderItem(context.Context, string) error     { return m.err }

func TestStats(t *testing.T) {
	mock := &mockOrdersAPI{orders: []domain.Order{
		{ID: "o1", TotalAmount: decimal.RequireFromString("35.50"), Status: "Pending"},
		{ID: "o2", TotalAmount: decimal.RequireFromString("10"), Status: "processing"},
		{ID: "o3", TotalAmount: decimal.RequireFromString("4.50"), Status: "delivered"},
	}}
	sut := NewOrderService(mock)

	stats, err := sut.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalOrders)
	assert.True(t, stats.TotalRevenue.Equal(decimal.RequireFromString("50")), "got %s", stats.TotalRevenue)
	// Pending covers pending and processing, case-insensitively.
	assert.Equal(t, 2, stats.PendingOrders)
}

func TestStats_Empty(t *testing.T) {
	sut := NewOrderService(&mockOrdersAPI{})
	stats, err := sut.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalOrders)
	assert.True(t, stats.TotalRevenue.IsZero())
}

func TestDetails_RequiresID(t *testing.T) {
	sut := NewOrderService(&mockOrdersAPI{})
	_, err := sut.Details(context.Background(), "")
	require.ErrorIs(t, err, ErrOrderIDRequired)

	require.ErrorIs(t, sut.UpdateStatus(context.Background(), "", "shipped"), ErrOrderIDRequired)
	require.ErrorIs(t, sut.Delete(context.Background(), ""), ErrOrderIDRequired)
	require.ErrorIs(t, sut.DeleteItem(context.Background(), ""), ErrOrderIDRequired)
}
