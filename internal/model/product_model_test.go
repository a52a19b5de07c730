package model_test

import (
	"testing"
	"time"

	"github.com/stackltd/API-for-onlinestore/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEffectivePrice(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	regular := decimal.NewFromInt(100)
	sale := decimal.NewFromInt(60)
	from := now.Add(-24 * time.Hour)
	to := now.Add(24 * time.Hour)

	t.Run("inside sale window", func(t *testing.T) {
		p := model.Product{Price: regular, SalePrice: &sale, DateFrom: &from, DateTo: &to}
		assert.True(t, p.EffectivePrice(now).Equal(sale))
	})

	t.Run("window boundaries are inclusive", func(t *testing.T) {
		p := model.Product{Price: regular, SalePrice: &sale, DateFrom: &from, DateTo: &to}
		assert.True(t, p.EffectivePrice(from).Equal(sale))
		assert.True(t, p.EffectivePrice(to).Equal(sale))
	})

	t.Run("before and after the window", func(t *testing.T) {
		p := model.Product{Price: regular, SalePrice: &sale, DateFrom: &from, DateTo: &to}
		assert.True(t, p.EffectivePrice(from.Add(-time.Second)).Equal(regular))
		assert.True(t, p.EffectivePrice(to.Add(time.Second)).Equal(regular))
	})

	t.Run("no sale configured", func(t *testing.T) {
		p := model.Product{Price: regular}
		assert.True(t, p.EffectivePrice(now).Equal(regular))
	})

	t.Run("sale without a window never applies", func(t *testing.T) {
		p := model.Product{Price: regular, SalePrice: &sale}
		assert.True(t, p.EffectivePrice(now).Equal(regular))

		p = model.Product{Price: regular, SalePrice: &sale, DateFrom: &from}
		assert.True(t, p.EffectivePrice(now).Equal(regular))
	})
}
