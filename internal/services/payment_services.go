package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stackltd/API-for-onlinestore/internal/model"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// PaymentService records payment submissions. This is a recording stub: the
// payload is stored verbatim and the order is completed unconditionally,
// there is no gateway behind it.
type PaymentService struct {
	Orders OrderStore
	Logger *zap.Logger
}

func NewPaymentService(o OrderStore, logger *zap.Logger) *PaymentService {
	return &PaymentService{Orders: o, Logger: logger}
}

// Record serializes the payload into the order's payment-data slot and moves
// the order to "completed" regardless of its prior status. Calling it twice
// overwrites the stored payload harmlessly.
func (s *PaymentService) Record(ctx context.Context, orderID int64, payload map[string]interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payment payload: %w", err)
	}
	if err := s.Orders.RecordPayment(ctx, orderID, data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("order %d: %w", orderID, ErrNotFound)
		}
		return err
	}
	s.Logger.Info("payment recorded",
		zap.Int64("order_id", orderID),
		zap.String("status", model.OrderStatusCompleted))
	return nil
}
