package api

import (
	"context"
	"net/http"

	"github.com/tayyabfareed009/Ecommerce-Application/internal/domain"
)

type addToCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type updateQuantityRequest struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

type removeItemRequest struct {
	ItemID string `json:"itemId"`
}

// placeOrderResponse is the one endpoint whose success signal lives in the
// body rather than the status line. Both must agree: a 2xx response with
// success=false is still a failure.
type placeOrderResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}

// FetchCart returns the server's cart in response order. The result replaces
// any local copy wholesale.
func (c *Client) FetchCart(ctx context.Context) ([]domain.LineItem, error) {
	var items []domain.LineItem
	if err := c.do(ctx, "GET", "/cart", nil, &items, true); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) AddToCart(ctx context.Context, productID string, quantity int) error {
	return c.do(ctx, "POST", "/add-to-cart", addToCartRequest{ProductID: productID, Quantity: quantity}, nil, true)
}

func (c *Client) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	return c.do(ctx, "PUT", "/cart/update", updateQuantityRequest{ItemID: itemID, Quantity: quantity}, nil, true)
}

func (c *Client) RemoveItem(ctx context.Context, itemID string) error {
	return c.do(ctx, "DELETE", "/cart/item", removeItemRequest{ItemID: itemID}, nil, true)
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, "DELETE", "/cart/clear", nil, nil, true)
}

// PlaceOrder submits the order and returns the backend-assigned order ID.
func (c *Client) PlaceOrder(ctx context.Context, req domain.OrderRequest) (string, error) {
	var out placeOrderResponse
	if err := c.do(ctx, "POST", "/place-order", req, &out, true); err != nil {
		return "", err
	}
	if !out.Success {
		msg := out.Message
		if msg == "" {
			msg = "order was not accepted"
		}
		return "", &APIError{StatusCode: http.StatusOK, Message: msg}
	}
	return out.OrderID, nil
}
