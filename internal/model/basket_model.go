package model

import "github.com/shopspring/decimal"

// Basket represents a row in the baskets table (one per user).
type Basket struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"-"`
}

// BasketEntry is a basket_items row joined with its product, before the
// effective price is applied.
type BasketEntry struct {
	Product Product
	Count   int
}

// BasketLine is what GET /api/basket exposes per item.
type BasketLine struct {
	ID     int64           `json:"id"`
	Title  string          `json:"title"`
	Price  decimal.Decimal `json:"price"`
	Images []Image         `json:"images"`
	Count  int             `json:"count"`
}
