package services

import (
	"context"
	"time"

	"github.com/stackltd/API-for-onlinestore/internal/model"

	"github.com/shopspring/decimal"
)

// Storage interfaces consumed by the services. internal/repository provides
// the pgx-backed implementations; tests substitute fakes.

type ProductStore interface {
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context, f model.CatalogFilter) ([]model.ProductListing, error)
	Sales(ctx context.Context, now time.Time) ([]model.ProductListing, error)
	Popular(ctx context.Context) ([]model.ProductListing, error)
	Limited(ctx context.Context) ([]model.ProductListing, error)
	Banners(ctx context.Context) ([]model.ProductListing, error)
	Detail(ctx context.Context, id int64) (*model.ProductDetail, error)
	ImagesByProduct(ctx context.Context, ids []int64) (map[int64][]model.Image, error)
}

type CategoryStore interface {
	Roots(ctx context.Context) ([]model.Category, error)
	Children(ctx context.Context, parentID int64) ([]model.Category, error)
	SubtreeIDs(ctx context.Context, id int64) ([]int64, error)
}

type TagStore interface {
	List(ctx context.Context, categoryID *int64) ([]model.Tag, error)
}

type ReviewStore interface {
	Create(ctx context.Context, rv *model.Review) error
}

type BasketStore interface {
	GetOrCreate(ctx context.Context, userID int64) (int64, error)
	Items(ctx context.Context, basketID int64) ([]model.BasketEntry, error)
	ItemCount(ctx context.Context, basketID, productID int64) (int, error)
	UpsertItem(ctx context.Context, basketID, productID int64, count int) error
	SetItemCount(ctx context.Context, basketID, productID int64, count int) error
	DeleteItem(ctx context.Context, basketID, productID int64) error
	ReplaceItems(ctx context.Context, userID int64, items map[string]int) error
}

type OrderStore interface {
	CreateWithLines(ctx context.Context, userID int64, lines []model.LineItem, total decimal.Decimal) (int64, error)
	GetByID(ctx context.Context, orderID int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.OrderSummary, error)
	Lines(ctx context.Context, orderID int64) ([]model.OrderEntry, error)
	Confirm(ctx context.Context, o *model.Order) error
	RecordPayment(ctx context.Context, orderID int64, payload []byte) error
}

type UserStore interface {
	Create(ctx context.Context, username, name, passwordHash string) (int64, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

type ProfileStore interface {
	GetOrCreate(ctx context.Context, userID int64) (*model.Profile, error)
	Update(ctx context.Context, p *model.Profile) error
}
