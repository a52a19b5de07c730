package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a row in the products table
type Product struct {
	ID              int64            `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	FullDescription string           `json:"fullDescription,omitempty"`
	Price           decimal.Decimal  `json:"price"`
	Count           int              `json:"count"`
	FreeDelivery    bool             `json:"freeDelivery"`
	SortIndex       int              `json:"-"`
	LimitedEdition  bool             `json:"-"`
	SalePrice       *decimal.Decimal `json:"-"`
	DateFrom        *time.Time       `json:"-"`
	DateTo          *time.Time       `json:"-"`
	Date            time.Time        `json:"date"`
	Archived        bool             `json:"-"`
	CategoryID      *int64           `json:"category,omitempty"`
}

// EffectivePrice is the price a buyer pays right now: salePrice while the
// sale window [DateFrom, DateTo] contains now, the regular price otherwise.
func (p *Product) EffectivePrice(now time.Time) decimal.Decimal {
	if p.SalePrice != nil && p.DateFrom != nil && p.DateTo != nil {
		if !now.Before(*p.DateFrom) && !now.After(*p.DateTo) {
			return *p.SalePrice
		}
	}
	return p.Price
}

type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

type Tag struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CategoryID *int64 `json:"-"`
}

type Review struct {
	ID        int64     `json:"-"`
	ProductID int64     `json:"-"`
	Author    string    `json:"author"`
	Email     string    `json:"email"`
	Text      string    `json:"text"`
	Rate      int       `json:"rate"`
	Date      time.Time `json:"date"`
}

type Specification struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ProductListing is a product row joined with images, tags and review
// aggregates, as loaded for the catalog and home-page queries.
type ProductListing struct {
	Product
	Images  []Image  `json:"images"`
	Tags    []Tag    `json:"tags"`
	Reviews int      `json:"reviews"`
	Rating  *float64 `json:"rating"`
}

// ProductDetail is the full product view with embedded reviews and specs.
type ProductDetail struct {
	ProductListing
	ReviewList     []Review        `json:"-"`
	Specifications []Specification `json:"specifications"`
}

// CatalogFilter carries the query-string filters of GET /api/catalog.
// CategoryIDs is already expanded to the matching category subtree.
type CatalogFilter struct {
	Name         string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	Available    bool
	FreeDelivery bool
	TagID        *int64
	CategoryIDs  []int64
}
