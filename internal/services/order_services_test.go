package services_test

import (
	"context"
	"testing"

	"github.com/stackltd/API-for-onlinestore/internal/model"
	"github.com/stackltd/API-for-onlinestore/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func strptr(s string) *string { return &s }

func TestOrderCreateTotalsClientPrices(t *testing.T) {
	ctx := context.Background()
	orders := newFakeOrderStore()
	svc := services.NewOrderService(orders, newFakeProductStore(), zap.NewNop())

	id, err := svc.Create(ctx, 42, []model.LineItem{
		{ID: 5, Price: decimal.NewFromFloat(5.75), Count: 2},
		{ID: 9, Price: decimal.NewFromFloat(12.00), Count: 1},
	})
	require.NoError(t, err)

	o := orders.orders[id]
	require.NotNil(t, o)
	assert.Equal(t, model.OrderStatusCreated, o.Status)
	assert.True(t, o.TotalCost.Equal(decimal.NewFromFloat(23.50)), "got %s", o.TotalCost)
}

func TestOrderCreateRejectsNonPositiveCount(t *testing.T) {
	ctx := context.Background()
	svc := services.NewOrderService(newFakeOrderStore(), newFakeProductStore(), zap.NewNop())

	_, err := svc.Create(ctx, 42, []model.LineItem{{ID: 5, Price: decimal.NewFromInt(1), Count: 0}})
	require.ErrorIs(t, err, services.ErrValidation)
}

func TestOrderConfirmAppliesPatchAndRecomputes(t *testing.T) {
	ctx := context.Background()
	orders := newFakeOrderStore()
	svc := services.NewOrderService(orders, newFakeProductStore(), zap.NewNop())

	id, err := svc.Create(ctx, 42, []model.LineItem{{ID: 5, Price: decimal.NewFromInt(10), Count: 1}})
	require.NoError(t, err)

	patch := model.ContactPatch{
		FullName: strptr("Ann Example"),
		City:     strptr("Riga"),
	}
	confirmed, err := svc.Confirm(ctx, id, patch, []model.LineItem{
		{ID: 5, Price: decimal.NewFromInt(10), Count: 3},
	})
	require.NoError(t, err)
	require.NotNil(t, confirmed)
	assert.Equal(t, id, *confirmed)

	o := orders.orders[id]
	assert.Equal(t, model.OrderStatusConfirmed, o.Status)
	assert.Equal(t, "Ann Example", o.FullName)
	assert.Equal(t, "Riga", o.City)
	assert.Empty(t, o.Email, "untouched fields stay as they were")
	assert.True(t, o.TotalCost.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, []int64{42}, orders.basketsCleared)
}

func TestOrderConfirmLeavesCompletedAlone(t *testing.T) {
	ctx := context.Background()
	orders := newFakeOrderStore()
	svc := services.NewOrderService(orders, newFakeProductStore(), zap.NewNop())

	id, err := svc.Create(ctx, 42, []model.LineItem{{ID: 5, Price: decimal.NewFromInt(10), Count: 1}})
	require.NoError(t, err)
	orders.orders[id].Status = model.OrderStatusCompleted

	confirmed, err := svc.Confirm(ctx, id, model.ContactPatch{FullName: strptr("Late Edit")}, nil)
	require.NoError(t, err)
	assert.Nil(t, confirmed)
	assert.Empty(t, orders.orders[id].FullName)
}

func TestOrderConfirmUnknownOrder(t *testing.T) {
	ctx := context.Background()
	svc := services.NewOrderService(newFakeOrderStore(), newFakeProductStore(), zap.NewNop())

	_, err := svc.Confirm(ctx, 404, model.ContactPatch{}, nil)
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestOrderGetKeepsStoredCounts(t *testing.T) {
	ctx := context.Background()
	orders := newFakeOrderStore()
	svc := services.NewOrderService(orders, newFakeProductStore(), zap.NewNop())

	id, err := svc.Create(ctx, 42, []model.LineItem{{ID: 5, Price: decimal.NewFromInt(10), Count: 2}})
	require.NoError(t, err)

	detail, err := svc.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, detail.Products, 1)
	assert.Equal(t, int64(5), detail.Products[0].ID)
	assert.Equal(t, 2, detail.Products[0].Count)
}

func TestOrderListByUserNeverNil(t *testing.T) {
	ctx := context.Background()
	svc := services.NewOrderService(newFakeOrderStore(), newFakeProductStore(), zap.NewNop())

	summaries, err := svc.ListByUser(ctx, 42)
	require.NoError(t, err)
	assert.NotNil(t, summaries)
	assert.Empty(t, summaries)
}
