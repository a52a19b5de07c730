package services_test

import (
	"context"
	"time"

	"github.com/stackltd/API-for-onlinestore/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// In-memory stand-ins for the pgx repositories. Missing rows surface as
// pgx.ErrNoRows, same as the real thing.

type fakeProductStore struct {
	products map[int64]*model.Product
	images   map[int64][]model.Image
}

func newFakeProductStore(products ...*model.Product) *fakeProductStore {
	s := &fakeProductStore{
		products: make(map[int64]*model.Product),
		images:   make(map[int64][]model.Image),
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *fakeProductStore) GetByID(_ context.Context, id int64) (*model.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return p, nil
}

func (s *fakeProductStore) List(context.Context, model.CatalogFilter) ([]model.ProductListing, error) {
	return nil, nil
}

func (s *fakeProductStore) Sales(context.Context, time.Time) ([]model.ProductListing, error) {
	return nil, nil
}

func (s *fakeProductStore) Popular(context.Context) ([]model.ProductListing, error) { return nil, nil }
func (s *fakeProductStore) Limited(context.Context) ([]model.ProductListing, error) { return nil, nil }
func (s *fakeProductStore) Banners(context.Context) ([]model.ProductListing, error) { return nil, nil }

func (s *fakeProductStore) Detail(_ context.Context, id int64) (*model.ProductDetail, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &model.ProductDetail{ProductListing: model.ProductListing{Product: *p}}, nil
}

func (s *fakeProductStore) ImagesByProduct(_ context.Context, ids []int64) (map[int64][]model.Image, error) {
	out := make(map[int64][]model.Image)
	for _, id := range ids {
		if imgs, ok := s.images[id]; ok {
			out[id] = imgs
		}
	}
	return out, nil
}

type fakeBasketStore struct {
	items        map[int64]map[int64]int // basketID -> productID -> count
	replacedWith map[string]int
}

func newFakeBasketStore() *fakeBasketStore {
	return &fakeBasketStore{items: make(map[int64]map[int64]int)}
}

// GetOrCreate keys baskets by user id directly.
func (s *fakeBasketStore) GetOrCreate(_ context.Context, userID int64) (int64, error) {
	if _, ok := s.items[userID]; !ok {
		s.items[userID] = make(map[int64]int)
	}
	return userID, nil
}

func (s *fakeBasketStore) Items(_ context.Context, basketID int64) ([]model.BasketEntry, error) {
	var entries []model.BasketEntry
	for productID, count := range s.items[basketID] {
		entries = append(entries, model.BasketEntry{
			Product: model.Product{ID: productID},
			Count:   count,
		})
	}
	return entries, nil
}

func (s *fakeBasketStore) ItemCount(_ context.Context, basketID, productID int64) (int, error) {
	count, ok := s.items[basketID][productID]
	if !ok {
		return 0, pgx.ErrNoRows
	}
	return count, nil
}

func (s *fakeBasketStore) UpsertItem(_ context.Context, basketID, productID int64, count int) error {
	s.items[basketID][productID] += count
	return nil
}

func (s *fakeBasketStore) SetItemCount(_ context.Context, basketID, productID int64, count int) error {
	if _, ok := s.items[basketID][productID]; !ok {
		return pgx.ErrNoRows
	}
	s.items[basketID][productID] = count
	return nil
}

func (s *fakeBasketStore) DeleteItem(_ context.Context, basketID, productID int64) error {
	if _, ok := s.items[basketID][productID]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.items[basketID], productID)
	return nil
}

func (s *fakeBasketStore) ReplaceItems(_ context.Context, userID int64, items map[string]int) error {
	s.replacedWith = items
	s.items[userID] = make(map[int64]int)
	return nil
}

type fakeOrderStore struct {
	nextID         int64
	orders         map[int64]*model.Order
	lines          map[int64][]model.LineItem
	basketsCleared []int64
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{
		nextID: 1,
		orders: make(map[int64]*model.Order),
		lines:  make(map[int64][]model.LineItem),
	}
}

func (s *fakeOrderStore) CreateWithLines(_ context.Context, userID int64, lines []model.LineItem, total decimal.Decimal) (int64, error) {
	id := s.nextID
	s.nextID++
	s.orders[id] = &model.Order{
		ID:        id,
		UserID:    userID,
		TotalCost: total,
		Status:    model.OrderStatusCreated,
	}
	s.lines[id] = lines
	return id, nil
}

func (s *fakeOrderStore) GetByID(_ context.Context, orderID int64) (*model.Order, error) {
	o, ok := s.orders[orderID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *o
	return &copied, nil
}

func (s *fakeOrderStore) ListByUser(_ context.Context, userID int64) ([]model.OrderSummary, error) {
	var out []model.OrderSummary
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, model.OrderSummary{ID: o.ID, TotalCost: o.TotalCost, Status: o.Status})
		}
	}
	return out, nil
}

func (s *fakeOrderStore) Lines(_ context.Context, orderID int64) ([]model.OrderEntry, error) {
	var out []model.OrderEntry
	for _, l := range s.lines[orderID] {
		out = append(out, model.OrderEntry{
			Product: model.Product{ID: l.ID, Price: l.Price},
			Count:   l.Count,
		})
	}
	return out, nil
}

func (s *fakeOrderStore) Confirm(_ context.Context, o *model.Order) error {
	stored, ok := s.orders[o.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	*stored = *o
	s.basketsCleared = append(s.basketsCleared, o.UserID)
	return nil
}

func (s *fakeOrderStore) RecordPayment(_ context.Context, orderID int64, payload []byte) error {
	o, ok := s.orders[orderID]
	if !ok {
		return pgx.ErrNoRows
	}
	o.PaymentData = payload
	o.PaymentError = false
	o.Status = model.OrderStatusCompleted
	return nil
}
