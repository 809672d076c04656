package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopadmin-backend/pkg/enums"
)

var hundred = decimal.NewFromInt(100)

// ProductDiscount is the single discount a product may carry.
type ProductDiscount struct {
	ID        int64              `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID int64              `gorm:"column:product_id;not null;uniqueIndex"`
	Product   *Product           `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Type      enums.DiscountType `gorm:"column:type;not null"`
	Value     decimal.Decimal    `gorm:"column:value;type:decimal(10,2);not null"`
	StartAt   *time.Time         `gorm:"column:start_at"`
	EndAt     *time.Time         `gorm:"column:end_at"`
	IsActive  bool               `gorm:"column:is_active;not null"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// IsValidAt reports whether the discount applies at now. Missing bounds are open;
// instants equal to a bound are inside the window.
func (d *ProductDiscount) IsValidAt(now time.Time) bool {
	if d == nil || !d.IsActive {
		return false
	}
	if d.StartAt != nil && now.Before(*d.StartAt) {
		return false
	}
	if d.EndAt != nil && now.After(*d.EndAt) {
		return false
	}
	return true
}

// ApplyDiscount returns the effective price at now, always within [0, price]
// for a non-negative price.
func (d *ProductDiscount) ApplyDiscount(price decimal.Decimal, now time.Time) decimal.Decimal {
	if !d.IsValidAt(now) {
		return price
	}

	var result decimal.Decimal
	switch d.Type {
	case enums.DiscountTypeFlat:
		result = price.Sub(d.Value)
	case enums.DiscountTypePercentage:
		result = price.Sub(price.Mul(d.Value).Div(hundred))
	default:
		return price
	}

	if result.IsNegative() {
		return decimal.Zero
	}
	if result.GreaterThan(price) {
		return price
	}
	return result
}
