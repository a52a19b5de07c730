package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/stackltd/API-for-onlinestore/internal/model"
	"github.com/stackltd/API-for-onlinestore/internal/session"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Identity addresses a basket: a signed-in user id, or the anonymous session
// token when UserID is zero.
type Identity struct {
	UserID int64
	Token  string
}

func (id Identity) Authenticated() bool { return id.UserID != 0 }

type BasketService struct {
	Baskets  BasketStore
	Products ProductStore
	Sessions session.Store
	Logger   *zap.Logger
}

func NewBasketService(b BasketStore, p ProductStore, s session.Store, logger *zap.Logger) *BasketService {
	return &BasketService{Baskets: b, Products: p, Sessions: s, Logger: logger}
}

// Get returns the identity's basket lines with current effective prices.
func (s *BasketService) Get(ctx context.Context, id Identity) ([]model.BasketLine, error) {
	if id.Authenticated() {
		return s.userBasket(ctx, id.UserID)
	}
	return s.anonBasket(ctx, id.Token)
}

func (s *BasketService) userBasket(ctx context.Context, userID int64) ([]model.BasketLine, error) {
	basketID, err := s.Baskets.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	entries, err := s.Baskets.Items(ctx, basketID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.Product.ID)
	}
	images, err := s.Products.ImagesByProduct(ctx, ids)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	lines := make([]model.BasketLine, 0, len(entries))
	for _, e := range entries {
		imgs := images[e.Product.ID]
		if imgs == nil {
			imgs = []model.Image{}
		}
		lines = append(lines, model.BasketLine{
			ID:     e.Product.ID,
			Title:  e.Product.Title,
			Price:  e.Product.EffectivePrice(now),
			Images: imgs,
			Count:  e.Count,
		})
	}
	return lines, nil
}

func (s *BasketService) anonBasket(ctx context.Context, token string) ([]model.BasketLine, error) {
	items, err := s.Sessions.Basket(ctx, token)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(items))
	counts := make(map[int64]int, len(items))
	for key, count := range items {
		productID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, productID)
		counts[productID] = count
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	now := time.Now()
	lines := make([]model.BasketLine, 0, len(ids))
	for _, productID := range ids {
		p, err := s.Products.GetByID(ctx, productID)
		if err != nil {
			// entries are not checked against the catalog until now; a
			// vanished product is silently dropped
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return nil, err
		}
		images, err := s.Products.ImagesByProduct(ctx, []int64{p.ID})
		if err != nil {
			return nil, err
		}
		imgs := images[p.ID]
		if imgs == nil {
			imgs = []model.Image{}
		}
		lines = append(lines, model.BasketLine{
			ID:     p.ID,
			Title:  p.Title,
			Price:  p.EffectivePrice(now),
			Images: imgs,
			Count:  counts[productID],
		})
	}
	return lines, nil
}

// Add puts count units of a product into the identity's basket, accumulating
// with any existing line.
func (s *BasketService) Add(ctx context.Context, id Identity, productID int64, count int) error {
	if count <= 0 {
		return fmt.Errorf("count must be a positive integer: %w", ErrValidation)
	}
	if _, err := s.Products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("product %d: %w", productID, ErrNotFound)
		}
		return err
	}

	if id.Authenticated() {
		basketID, err := s.Baskets.GetOrCreate(ctx, id.UserID)
		if err != nil {
			return err
		}
		return s.Baskets.UpsertItem(ctx, basketID, productID, count)
	}

	items, err := s.Sessions.Basket(ctx, id.Token)
	if err != nil {
		return err
	}
	items[strconv.FormatInt(productID, 10)] += count
	return s.Sessions.SetBasket(ctx, id.Token, items)
}

// Remove takes count units of a product out of the identity's basket,
// dropping the line when nothing is left of it.
func (s *BasketService) Remove(ctx context.Context, id Identity, productID int64, count int) error {
	if count <= 0 {
		return fmt.Errorf("count must be a positive integer: %w", ErrValidation)
	}

	if id.Authenticated() {
		basketID, err := s.Baskets.GetOrCreate(ctx, id.UserID)
		if err != nil {
			return err
		}
		stored, err := s.Baskets.ItemCount(ctx, basketID, productID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("item not in basket: %w", ErrNotFound)
			}
			return err
		}
		if stored > count {
			return s.Baskets.SetItemCount(ctx, basketID, productID, stored-count)
		}
		return s.Baskets.DeleteItem(ctx, basketID, productID)
	}

	items, err := s.Sessions.Basket(ctx, id.Token)
	if err != nil {
		return err
	}
	key := strconv.FormatInt(productID, 10)
	stored, ok := items[key]
	if !ok {
		return fmt.Errorf("item not in basket: %w", ErrNotFound)
	}
	if stored > count {
		items[key] = stored - count
	} else {
		delete(items, key)
	}
	return s.Sessions.SetBasket(ctx, id.Token, items)
}

// MergeOnLogin replaces the user's basket with the anonymous session basket
// and clears the session mapping. The merge is destructive: whatever the
// user had before login is gone. With an empty session mapping it is a no-op.
func (s *BasketService) MergeOnLogin(ctx context.Context, userID int64, token string) error {
	if token == "" {
		return nil
	}
	items, err := s.Sessions.Basket(ctx, token)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	if err := s.Baskets.ReplaceItems(ctx, userID, items); err != nil {
		return fmt.Errorf("merge basket: %w", err)
	}
	if err := s.Sessions.ClearBasket(ctx, token); err != nil {
		return err
	}
	s.Logger.Info("merged anonymous basket",
		zap.Int64("user_id", userID),
		zap.Int("items", len(items)))
	return nil
}
