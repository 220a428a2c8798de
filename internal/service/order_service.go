package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/tayyabfareed009/Ecommerce-Application/internal/domain"
)

var ErrOrderIDRequired = errors.New("order id required")

// OrdersAPI is the slice of the backend client order handling needs.
type OrdersAPI interface {
	Orders(ctx context.Context) ([]domain.Order, error)
	Order(ctx context.Context, orderID string) (domain.Order, error)
	UpdateOrder(ctx context.Context, orderID, status string) error
	DeleteOrder(ctx context.Context, orderID string) error
	DeleteOrderItem(ctx context.Context, orderItemID string) error
}

type OrderService struct {
	api OrdersAPI
}

func NewOrderService(api OrdersAPI) *OrderService {
	return &OrderService{api: api}
}

// DashboardStats is the seller dashboard summary: every order counts, revenue
// is the decimal sum of order totals, and pending covers both pending and
// processing statuses.
type DashboardStats struct {
	TotalOrders   int
	TotalRevenue  decimal.Decimal
	PendingOrders int
}

func (s *OrderService) History(ctx context.Context) ([]domain.Order, error) {
	return s.api.Orders(ctx)
}

func (s *OrderService) Details(ctx context.Context, orderID string) (domain.Order, error) {
	if orderID == "" {
		return domain.Order{}, ErrOrderIDRequired
	}
	return s.api.Order(ctx, orderID)
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderID, status string) error {
	if orderID == "" {
		return ErrOrderIDRequired
	}
	return s.api.UpdateOrder(ctx, orderID, status)
}

func (s *OrderService) Delete(ctx context.Context, orderID string) error {
	if orderID == "" {
		return ErrOrderIDRequired
	}
	return s.api.DeleteOrder(ctx, orderID)
}

func (s *OrderService) DeleteItem(ctx context.Context, orderItemID string) error {
	if orderItemID == "" {
		return ErrOrderIDRequired
	}
	return s.api.DeleteOrderItem(ctx, orderItemID)
}

// Stats aggregates the order list for the seller dashboard.
func (s *OrderService) Stats(ctx context.Context) (DashboardStats, error) {
	orders, err := s.api.Orders(ctx)
	if err != nil {
		return DashboardStats{}, err
	}

	stats := DashboardStats{
		TotalOrders:  len(orders),
		TotalRevenue: decimal.Zero,
	}
	for _, o := range orders {
		stats.TotalRevenue = stats.TotalRevenue.Add(o.TotalAmount)
		switch domain.NormalizeStatus(o.Status) {
		case domain.StatusPending, domain.StatusProcessing:
			stats.PendingOrders++
		}
	}
	return stats, nil
}
