package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/angelmondragon/shopadmin-backend/pkg/enums"
)

func TestApplyDiscount(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)
	mid := start.Add(72 * time.Hour)
	price := decimal.NewFromInt(100)

	tests := []struct {
		name     string
		discount ProductDiscount
		now      time.Time
		want     string
		valid    bool
	}{
		{"flat", ProductDiscount{Type: enums.DiscountTypeFlat, Value: decimal.NewFromInt(15), IsActive: true}, mid, "85", true},
		{"percentage", ProductDiscount{Type: enums.DiscountTypePercentage, Value: decimal.NewFromInt(10), IsActive: true}, mid, "90", true},
		{"flat above price floors at zero", ProductDiscount{Type: enums.DiscountTypeFlat, Value: decimal.NewFromInt(150), IsActive: true}, mid, "0", true},
		{"percentage above hundred floors at zero", ProductDiscount{Type: enums.DiscountTypePercentage, Value: decimal.NewFromInt(250), IsActive: true}, mid, "0", true},
		{"zero value", ProductDiscount{Type: enums.DiscountTypeFlat, Value: decimal.Zero, IsActive: true}, mid, "100", true},
		{"inactive", ProductDiscount{Type: enums.DiscountTypeFlat, Value: decimal.NewFromInt(15), IsActive: false}, mid, "100", false},
		{"now equals start", ProductDiscount{Type: enums.DiscountTypeFlat, Value: decimal.NewFromInt(15), StartAt: &start, EndAt: &end, IsActive: true}, start, "85", true},
		{"now equals end", ProductDiscount{Type: enums.DiscountTypePercentage, Value: decimal.NewFromInt(10), StartAt: &start, EndAt: &end, IsActive: true}, end, "90", true},
		{"before start", ProductDiscount{Type: enums.DiscountTypeFlat, Value: decimal.NewFromInt(15), StartAt: &start, IsActive: true}, start.Add(-time.Second), "100", false},
		{"after end", ProductDiscount{Type: enums.DiscountTypeFlat, Value: decimal.NewFromInt(15), EndAt: &end, IsActive: true}, end.Add(time.Second), "100", false},
		{"unknown type", ProductDiscount{Type: enums.DiscountType("bogus"), Value: decimal.NewFromInt(15), IsActive: true}, mid, "100", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.discount.ApplyDiscount(price, tc.now)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "got %s, want %s", got, tc.want)
			assert.False(t, got.IsNegative())
			assert.False(t, got.GreaterThan(price))
			assert.Equal(t, tc.valid, tc.discount.IsValidAt(tc.now))
		})
	}
}

func TestIsValidAtNilDiscount(t *testing.T) {
	var d *ProductDiscount
	assert.False(t, d.IsValidAt(time.Now()))
}
