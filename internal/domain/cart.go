package domain

import "github.com/shopspring/decimal"

// The backend speaks bare JSON numbers for prices and totals, not quoted
// decimals.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// PlaceholderImageURL is substituted for line items and order lines that have
// no image attached.
const PlaceholderImageURL = "https://via.placeholder.com/150"

// LineItem is one product-plus-quantity entry in a cart, as returned by the
// backend. The item ID is assigned remotely and is distinct from the product
// ID it references.
type LineItem struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	Name            string          `json:"name"`
	UnitPrice       decimal.Decimal `json:"price"`
	Quantity        int             `json:"quantity"`
	ImageURL        string          `json:"image_url,omitempty"`
	DiscountPercent decimal.Decimal `json:"discount_percent,omitempty"`
}

// Subtotal is unit price times quantity. Discounts never apply here.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// DiscountedUnitPrice is the display price after DiscountPercent is applied.
// It never feeds into Total; the checkout amount always uses UnitPrice.
func (li LineItem) DiscountedUnitPrice() decimal.Decimal {
	if li.DiscountPercent.IsZero() {
		return li.UnitPrice
	}
	factor := decimal.NewFromInt(100).Sub(li.DiscountPercent).Div(decimal.NewFromInt(100))
	return li.UnitPrice.Mul(factor)
}

// Total computes the cart total from scratch: the sum of unit price times
// quantity over all items. It is recomputed after every mutation rather than
// patched incrementally, so it cannot drift from the item list.
func Total(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, li := range items {
		total = total.Add(li.Subtotal())
	}
	return total
}
