package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stackltd/API-for-onlinestore/internal/model"
	"github.com/stackltd/API-for-onlinestore/internal/services"
	"github.com/stackltd/API-for-onlinestore/internal/session"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBasketService(products ...*model.Product) (*services.BasketService, *fakeBasketStore, *session.MemoryStore) {
	baskets := newFakeBasketStore()
	sessions := session.NewMemoryStore(time.Hour)
	svc := services.NewBasketService(baskets, newFakeProductStore(products...), sessions, zap.NewNop())
	return svc, baskets, sessions
}

func TestBasketAddAnonymousAccumulates(t *testing.T) {
	ctx := context.Background()
	p := &model.Product{ID: 5, Title: "Mug", Price: decimal.NewFromInt(10)}
	svc, _, sessions := newBasketService(p)
	defer sessions.Close()

	anon := services.Identity{Token: "tok"}
	require.NoError(t, svc.Add(ctx, anon, 5, 2))
	require.NoError(t, svc.Add(ctx, anon, 5, 1))

	lines, err := svc.Get(ctx, anon)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(5), lines[0].ID)
	assert.Equal(t, 3, lines[0].Count)
	assert.True(t, lines[0].Price.Equal(decimal.NewFromInt(10)))
}

func TestBasketAddRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	svc, _, sessions := newBasketService(&model.Product{ID: 5})
	defer sessions.Close()
	anon := services.Identity{Token: "tok"}

	err := svc.Add(ctx, anon, 5, 0)
	require.ErrorIs(t, err, services.ErrValidation)

	err = svc.Add(ctx, anon, 404, 1)
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestBasketRemoveDecrementsThenDrops(t *testing.T) {
	ctx := context.Background()
	p := &model.Product{ID: 5, Price: decimal.NewFromInt(10)}
	svc, _, sessions := newBasketService(p)
	defer sessions.Close()
	anon := services.Identity{Token: "tok"}

	require.NoError(t, svc.Add(ctx, anon, 5, 3))
	require.NoError(t, svc.Remove(ctx, anon, 5, 2))

	lines, err := svc.Get(ctx, anon)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Count)

	// removing more than is left drops the line entirely
	require.NoError(t, svc.Remove(ctx, anon, 5, 5))
	lines, err = svc.Get(ctx, anon)
	require.NoError(t, err)
	assert.Empty(t, lines)

	err = svc.Remove(ctx, anon, 5, 1)
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestBasketRemoveAuthenticated(t *testing.T) {
	ctx := context.Background()
	p := &model.Product{ID: 7, Price: decimal.NewFromInt(4)}
	svc, baskets, sessions := newBasketService(p)
	defer sessions.Close()
	user := services.Identity{UserID: 42}

	require.NoError(t, svc.Add(ctx, user, 7, 2))
	require.NoError(t, svc.Remove(ctx, user, 7, 1))
	assert.Equal(t, 1, baskets.items[42][7])

	require.NoError(t, svc.Remove(ctx, user, 7, 1))
	_, ok := baskets.items[42][7]
	assert.False(t, ok)

	err := svc.Remove(ctx, user, 7, 1)
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestBasketGetDropsVanishedProducts(t *testing.T) {
	ctx := context.Background()
	p := &model.Product{ID: 5, Title: "Mug", Price: decimal.NewFromInt(10)}
	svc, _, sessions := newBasketService(p)
	defer sessions.Close()

	require.NoError(t, sessions.SetBasket(ctx, "tok", map[string]int{"5": 1, "999": 2}))

	lines, err := svc.Get(ctx, services.Identity{Token: "tok"})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(5), lines[0].ID)
}

func TestBasketGetUsesSalePrice(t *testing.T) {
	ctx := context.Background()
	sale := decimal.NewFromFloat(7.50)
	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)
	p := &model.Product{ID: 5, Price: decimal.NewFromInt(10), SalePrice: &sale, DateFrom: &from, DateTo: &to}
	svc, _, sessions := newBasketService(p)
	defer sessions.Close()
	anon := services.Identity{Token: "tok"}

	require.NoError(t, svc.Add(ctx, anon, 5, 1))
	lines, err := svc.Get(ctx, anon)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Price.Equal(sale))
}

func TestMergeOnLoginReplacesUserBasket(t *testing.T) {
	ctx := context.Background()
	svc, baskets, sessions := newBasketService(
		&model.Product{ID: 5, Price: decimal.NewFromInt(1)},
		&model.Product{ID: 9, Price: decimal.NewFromInt(2)},
	)
	defer sessions.Close()

	require.NoError(t, sessions.SetBasket(ctx, "tok", map[string]int{"5": 2, "9": 1}))

	require.NoError(t, svc.MergeOnLogin(ctx, 42, "tok"))
	assert.Equal(t, map[string]int{"5": 2, "9": 1}, baskets.replacedWith)

	// the anonymous basket is gone afterwards
	items, err := sessions.Basket(ctx, "tok")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMergeOnLoginEmptySessionIsNoop(t *testing.T) {
	ctx := context.Background()
	svc, baskets, sessions := newBasketService()
	defer sessions.Close()

	require.NoError(t, svc.MergeOnLogin(ctx, 42, "unknown"))
	assert.Nil(t, baskets.replacedWith)

	require.NoError(t, svc.MergeOnLogin(ctx, 42, ""))
	assert.Nil(t, baskets.replacedWith)
}
