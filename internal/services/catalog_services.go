package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stackltd/API-for-onlinestore/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type CatalogService struct {
	Products   ProductStore
	Categories CategoryStore
	Tags       TagStore
	Reviews    ReviewStore
}

func NewCatalogService(p ProductStore, c CategoryStore, t TagStore, r ReviewStore) *CatalogService {
	return &CatalogService{Products: p, Categories: c, Tags: t, Reviews: r}
}

// CatalogItem is a listing entry with the effective price applied.
type CatalogItem struct {
	ID           int64           `json:"id"`
	Category     *int64          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	Count        int             `json:"count"`
	Date         time.Time       `json:"date"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	FreeDelivery bool            `json:"freeDelivery"`
	Images       []model.Image   `json:"images"`
	Tags         []model.Tag     `json:"tags"`
	Reviews      int             `json:"reviews"`
	Rating       *float64        `json:"rating"`
}

// SaleItem additionally exposes the regular price and the sale window.
type SaleItem struct {
	ID        int64            `json:"id"`
	Price     decimal.Decimal  `json:"price"`
	SalePrice *decimal.Decimal `json:"salePrice"`
	DateFrom  *time.Time       `json:"dateFrom"`
	DateTo    *time.Time       `json:"dateTo"`
	Title     string           `json:"title"`
	Images    []model.Image    `json:"images"`
}

// ProductView is the full product detail response.
type ProductView struct {
	CatalogItem
	FullDescription string                `json:"fullDescription"`
	ReviewList      []model.Review        `json:"reviewList"`
	Specifications  []model.Specification `json:"specifications"`
}

func toCatalogItem(l model.ProductListing, now time.Time) CatalogItem {
	return CatalogItem{
		ID:           l.ID,
		Category:     l.CategoryID,
		Price:        l.EffectivePrice(now),
		Count:        l.Count,
		Date:         l.Date,
		Title:        l.Title,
		Description:  l.Description,
		FreeDelivery: l.FreeDelivery,
		Images:       l.Images,
		Tags:         l.Tags,
		Reviews:      l.Reviews,
		Rating:       l.Rating,
	}
}

func toCatalogItems(listings []model.ProductListing) []CatalogItem {
	now := time.Now()
	items := make([]CatalogItem, 0, len(listings))
	for _, l := range listings {
		items = append(items, toCatalogItem(l, now))
	}
	return items
}

// List returns the filtered catalog. A category filter is expanded to the
// category's subtree before querying.
func (s *CatalogService) List(ctx context.Context, f model.CatalogFilter, categoryID *int64) ([]CatalogItem, error) {
	if categoryID != nil {
		ids, err := s.Categories.SubtreeIDs(ctx, *categoryID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("category %d: %w", *categoryID, ErrNotFound)
			}
			return nil, err
		}
		if len(ids) == 0 {
			return []CatalogItem{}, nil
		}
		f.CategoryIDs = ids
	}
	listings, err := s.Products.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return toCatalogItems(listings), nil
}

func (s *CatalogService) Popular(ctx context.Context) ([]CatalogItem, error) {
	listings, err := s.Products.Popular(ctx)
	if err != nil {
		return nil, err
	}
	return toCatalogItems(listings), nil
}

func (s *CatalogService) Limited(ctx context.Context) ([]CatalogItem, error) {
	listings, err := s.Products.Limited(ctx)
	if err != nil {
		return nil, err
	}
	return toCatalogItems(listings), nil
}

func (s *CatalogService) Banners(ctx context.Context) ([]CatalogItem, error) {
	listings, err := s.Products.Banners(ctx)
	if err != nil {
		return nil, err
	}
	return toCatalogItems(listings), nil
}

func (s *CatalogService) Sales(ctx context.Context) ([]SaleItem, error) {
	listings, err := s.Products.Sales(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	items := make([]SaleItem, 0, len(listings))
	for _, l := range listings {
		items = append(items, SaleItem{
			ID:        l.ID,
			Price:     l.Price,
			SalePrice: l.SalePrice,
			DateFrom:  l.DateFrom,
			DateTo:    l.DateTo,
			Title:     l.Title,
			Images:    l.Images,
		})
	}
	return items, nil
}

// Get returns the full product detail.
func (s *CatalogService) Get(ctx context.Context, id int64) (*ProductView, error) {
	d, err := s.Products.Detail(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	view := &ProductView{
		CatalogItem:     toCatalogItem(d.ProductListing, time.Now()),
		FullDescription: d.FullDescription,
		ReviewList:      d.ReviewList,
		Specifications:  d.Specifications,
	}
	if view.ReviewList == nil {
		view.ReviewList = []model.Review{}
	}
	return view, nil
}

// CategoryTree returns the root categories with their children.
func (s *CatalogService) CategoryTree(ctx context.Context) ([]model.CategoryNode, error) {
	roots, err := s.Categories.Roots(ctx)
	if err != nil {
		return nil, err
	}
	nodes := make([]model.CategoryNode, 0, len(roots))
	for _, root := range roots {
		children, err := s.Categories.Children(ctx, root.ID)
		if err != nil {
			return nil, err
		}
		if children == nil {
			children = []model.Category{}
		}
		nodes = append(nodes, model.CategoryNode{ID: root.ID, Title: root.Title, Subcategories: children})
	}
	return nodes, nil
}

// ListTags returns tags, optionally restricted to a category.
func (s *CatalogService) ListTags(ctx context.Context, categoryID *int64) ([]model.Tag, error) {
	tags, err := s.Tags.List(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []model.Tag{}
	}
	return tags, nil
}

// AddReview attaches a review to a product.
func (s *CatalogService) AddReview(ctx context.Context, productID int64, rv model.Review) (*model.Review, error) {
	if rv.Author == "" || rv.Text == "" {
		return nil, fmt.Errorf("author and text are required: %w", ErrValidation)
	}
	if rv.Rate < 1 || rv.Rate > 5 {
		return nil, fmt.Errorf("rate must be between 1 and 5: %w", ErrValidation)
	}
	if _, err := s.Products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
		}
		return nil, err
	}
	rv.ProductID = productID
	if err := s.Reviews.Create(ctx, &rv); err != nil {
		return nil, err
	}
	return &rv, nil
}
