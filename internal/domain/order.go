package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses as reported by the backend. Comparison is case-insensitive
// on the wire, so use NormalizeStatus before matching.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

type Order struct {
	ID          string          `json:"order_id"`
	UserID      string          `json:"user_id,omitempty"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at,omitempty"`
	Items       []OrderLine     `json:"items,omitempty"`
}

// OrderLine is a cart line item flattened into the shape the order endpoint
// expects. ImageURL is always populated; missing images fall back to
// PlaceholderImageURL.
type OrderLine struct {
	ID        string          `json:"id,omitempty"`
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"image_url"`
}

// OrderRequest is the payload for placing an order. TotalAmount is the
// client-computed cart total.
type OrderRequest struct {
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []OrderLine     `json:"items"`
}

// NormalizeStatus folds a backend status string for comparison.
func NormalizeStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// OrderLineFrom converts a cart line item into an order line, defaulting the
// image to a placeholder when absent.
func OrderLineFrom(li LineItem) OrderLine {
	img := li.ImageURL
	if img == "" {
		img = PlaceholderImageURL
	}
	return OrderLine{
		ProductID: li.ProductID,
		Name:      li.Name,
		Price:     li.UnitPrice,
		Quantity:  li.Quantity,
		ImageURL:  img,
	}
}
