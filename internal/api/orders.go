package api

import (
	"context"

	"github.com/tayyabfareed009/Ecommerce-Application/internal/domain"
)

type updateOrderRequest struct {
	Status string `json:"status"`
}

// Orders returns the order history for the authenticated user. Sellers see
// every order against their store; buyers see their own.
func (c *Client) Orders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.do(ctx, "GET", "/orders", nil, &orders, true); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) Order(ctx context.Context, orderID string) (domain.Order, error) {
	var out domain.Order
	if err := c.do(ctx, "GET", "/order/"+orderID, nil, &out, true); err != nil {
		return domain.Order{}, err
	}
	return out, nil
}

func (c *Client) UpdateOrder(ctx context.Context, orderID, status string) error {
	return c.do(ctx, "PUT", "/update-order/"+orderID, updateOrderRequest{Status: status}, nil, true)
}

func (c *Client) DeleteOrder(ctx context.Context, orderID string) error {
	return c.do(ctx, "DELETE", "/delete-order/"+orderID, nil, nil, true)
}

func (c *Client) DeleteOrderItem(ctx context.Context, orderItemID string) error {
	return c.do(ctx, "DELETE", "/order-item/"+orderItemID, nil, nil, true)
}
