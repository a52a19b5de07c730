package model_test

import (
	"testing"

	"github.com/stackltd/API-for-onlinestore/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTotal(t *testing.T) {
	items := []model.LineItem{
		{ID: 5, Price: decimal.NewFromFloat(5.75), Count: 2},
		{ID: 9, Price: decimal.NewFromFloat(12.00), Count: 1},
	}
	assert.True(t, model.Total(items).Equal(decimal.NewFromFloat(23.50)))

	assert.True(t, model.Total(nil).Equal(decimal.Zero))
}

func TestContactPatchApply(t *testing.T) {
	full := "Ann Example"
	city := "Riga"

	o := model.Order{
		FullName: "Old Name",
		Email:    "old@example.com",
		City:     "Old City",
	}
	patch := model.ContactPatch{FullName: &full, City: &city}
	patch.Apply(&o)

	assert.Equal(t, "Ann Example", o.FullName)
	assert.Equal(t, "Riga", o.City)
	assert.Equal(t, "old@example.com", o.Email, "absent fields stay put")
}

func TestProfilePatchApply(t *testing.T) {
	phone := "+371 20000000"
	p := model.Profile{FullName: "Ann Example", Email: "ann@example.com"}
	model.ProfilePatch{Phone: &phone}.Apply(&p)

	assert.Equal(t, "+371 20000000", p.Phone)
	assert.Equal(t, "Ann Example", p.FullName)
	assert.Equal(t, "ann@example.com", p.Email)
}
