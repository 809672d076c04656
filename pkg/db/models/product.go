package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is owned by the catalog; this service only reads it.
type Product struct {
	ID           int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string          `gorm:"column:name;not null"`
	ThumbnailURL *string         `gorm:"column:thumbnail_url"`
	Photos       []string        `gorm:"column:photos;serializer:json"`
	Price        decimal.Decimal `gorm:"column:price;type:decimal(12,2);not null;default:0"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// Shop is the seller referenced by cart and order lines.
type Shop struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
