package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestTotal(t *testing.T) {
	items := []LineItem{
		{ID: "a", UnitPrice: dec("10"), Quantity: 2},
		{ID: "b", UnitPrice: dec("5"), Quantity: 3},
	}
	assert.True(t, Total(items).Equal(dec("35")), "got %s", Total(items))
}

func TestTotal_Empty(t *testing.T) {
	assert.True(t, Total(nil).IsZero())
	assert.True(t, Total([]LineItem{}).IsZero())
}

func TestTotal_IgnoresDiscount(t *testing.T) {
	items := []LineItem{
		{ID: "a", UnitPrice: dec("100"), Quantity: 1, DiscountPercent: dec("50")},
	}
	// Discount is presentational; the checkout total stays undiscounted.
	assert.True(t, Total(items).Equal(dec("100")))
}

func TestTotal_DecimalPrices(t *testing.T) {
	items := []LineItem{
		{ID: "a", UnitPrice: dec("0.10"), Quantity: 3},
		{ID: "b", UnitPrice: dec("19.99"), Quantity: 2},
	}
	assert.True(t, Total(items).Equal(dec("40.28")), "got %s", Total(items))
}

func TestDiscountedUnitPrice(t *testing.T) {
	li := LineItem{UnitPrice: dec("200"), DiscountPercent: dec("25")}
	assert.True(t, li.DiscountedUnitPrice().Equal(dec("150")), "got %s", li.DiscountedUnitPrice())

	plain := LineItem{UnitPrice: dec("200")}
	assert.True(t, plain.DiscountedUnitPrice().Equal(dec("200")))
}

func TestOrderLineFrom_PlaceholderImage(t *testing.T) {
	withImage := LineItem{ProductID: "p1", Name: "Mug", UnitPrice: dec("8"), Quantity: 2, ImageURL: "https://img.example/mug.png"}
	noImage := LineItem{ProductID: "p2", Name: "Cap", UnitPrice: dec("12"), Quantity: 1}

	assert.Equal(t, "https://img.example/mug.png", OrderLineFrom(withImage).ImageURL)
	assert.Equal(t, PlaceholderImageURL, OrderLineFrom(noImage).ImageURL)

	line := OrderLineFrom(withImage)
	assert.Equal(t, "p1", line.ProductID)
	assert.Equal(t, 2, line.Quantity)
	assert.True(t, line.Price.Equal(dec("8")))
}
