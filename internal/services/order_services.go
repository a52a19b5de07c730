package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stackltd/API-for-onlinestore/internal/model"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OrderService struct {
	Orders   OrderStore
	Products ProductStore
	Logger   *zap.Logger
}

func NewOrderService(o OrderStore, p ProductStore, logger *zap.Logger) *OrderService {
	return &OrderService{Orders: o, Products: p, Logger: logger}
}

// Create snapshots the given line items into a new order in status "created".
// Unit prices are taken from the client as-is; nothing here revalidates them
// against the catalog. The caller's basket is left alone.
func (s *OrderService) Create(ctx context.Context, userID int64, lines []model.LineItem) (int64, error) {
	for _, line := range lines {
		if line.Count <= 0 {
			return 0, fmt.Errorf("count must be a positive integer: %w", ErrValidation)
		}
	}
	total := model.Total(lines)
	orderID, err := s.Orders.CreateWithLines(ctx, userID, lines, total)
	if err != nil {
		return 0, err
	}
	s.Logger.Info("order created",
		zap.Int64("order_id", orderID),
		zap.Int64("user_id", userID),
		zap.String("total", total.String()))
	return orderID, nil
}

// Confirm applies the contact patch, recomputes the total from the supplied
// line items, moves the order to "confirmed" and clears the owner's basket.
// A completed order is left untouched and signalled by a nil order id.
func (s *OrderService) Confirm(ctx context.Context, orderID int64, patch model.ContactPatch, lines []model.LineItem) (*int64, error) {
	o, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
		}
		return nil, err
	}
	if o.Status == model.OrderStatusCompleted {
		return nil, nil
	}

	patch.Apply(o)
	o.TotalCost = model.Total(lines)
	o.Status = model.OrderStatusConfirmed
	if err := s.Orders.Confirm(ctx, o); err != nil {
		return nil, err
	}
	s.Logger.Info("order confirmed",
		zap.Int64("order_id", o.ID),
		zap.String("total", o.TotalCost.String()))
	return &o.ID, nil
}

// ListByUser returns the user's order summaries, most recent first.
func (s *OrderService) ListByUser(ctx context.Context, userID int64) ([]model.OrderSummary, error) {
	summaries, err := s.Orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []model.OrderSummary{}
	}
	return summaries, nil
}

// Get returns the full order detail; each product line carries the quantity
// stored in the order, and the price it shows is the current effective price.
func (s *OrderService) Get(ctx context.Context, orderID int64) (*model.OrderDetail, error) {
	o, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
		}
		return nil, err
	}
	entries, err := s.Orders.Lines(ctx, orderID)
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
	detail := &model.OrderDetail{Order: *o, Products: []model.OrderLine{}}
	for _, e := range entries {
		imgs := images[e.Product.ID]
		if imgs == nil {
			imgs = []model.Image{}
		}
		detail.Products = append(detail.Products, model.OrderLine{
			ID:          e.Product.ID,
			Title:       e.Product.Title,
			Description: e.Product.Description,
			Price:       e.Product.EffectivePrice(now),
			Count:       e.Count,
			Images:      imgs,
		})
	}
	return detail, nil
}
