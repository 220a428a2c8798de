package api

import (
	"context"

	"github.com/tayyabfareed009/Ecommerce-Application/internal/domain"
)

func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, "GET", "/products", nil, &products, false); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, "POST", "/products", p, &out, true); err != nil {
		return domain.Product{}, err
	}
	return out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, productID string) error {
	return c.do(ctx, "DELETE", "/delete-product/"+productID, nil, nil, true)
}
