package models

import "time"

// ProductAttribute links a product to one attribute/value combination with its own stock.
type ProductAttribute struct {
	ID               int64           `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID        int64           `gorm:"column:product_id;not null;index"`
	Product          *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	AttributeID      int64           `gorm:"column:attribute_id;not null;index"`
	Attribute        *Attribute      `gorm:"foreignKey:AttributeID;constraint:OnDelete:CASCADE"`
	AttributeValueID int64           `gorm:"column:attribute_value_id;not null;index"`
	Value            *AttributeValue `gorm:"foreignKey:AttributeValueID;constraint:OnDelete:CASCADE"`
	Stock            int             `gorm:"column:stock;not null;default:0"`
	IsActive         bool            `gorm:"column:is_active;not null"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
