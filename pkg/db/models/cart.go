package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopadmin-backend/pkg/enums"
)

type Cart struct {
	ID         int64            `gorm:"column:id;primaryKey;autoIncrement"`
	UserID     int64            `gorm:"column:user_id;not null;index"`
	User       *User            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Status     enums.CartStatus `gorm:"column:status;not null;default:active"`
	TotalItems int              `gorm:"column:total_items;not null;default:0"`
	Subtotal   decimal.Decimal  `gorm:"column:subtotal;type:decimal(12,2);not null;default:0"`
	Items      []CartItem       `gorm:"foreignKey:CartID"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// CartItem snapshots price and quantity at cart time; LineTotal caches qty x unit price.
type CartItem struct {
	ID               int64                `gorm:"column:id;primaryKey;autoIncrement"`
	CartID           *int64               `gorm:"column:cart_id;index"`
	Cart             *Cart                `gorm:"foreignKey:CartID;constraint:OnDelete:SET NULL"`
	ProductID        int64                `gorm:"column:product_id;not null;index"`
	Product          *Product             `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	ShopID           int64                `gorm:"column:shop_id;not null;index"`
	Shop             *Shop                `gorm:"foreignKey:ShopID;constraint:OnDelete:CASCADE"`
	AttributeID      *int64               `gorm:"column:attribute_id;index"`
	ProductAttribute *ProductAttribute    `gorm:"foreignKey:AttributeID;constraint:OnDelete:SET NULL"`
	Qty              int                  `gorm:"column:qty;not null"`
	UnitPrice        decimal.Decimal      `gorm:"column:unit_price;type:decimal(12,2);not null"`
	ResellerPrice    decimal.NullDecimal  `gorm:"column:reseller_price;type:decimal(12,2)"`
	LineTotal        decimal.Decimal      `gorm:"column:line_total;type:decimal(12,2);not null"`
	Status           enums.CartItemStatus `gorm:"column:status;not null;default:active"`
	CreatedAt        time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

// Recalculate refreshes the cached line total.
func (i *CartItem) Recalculate() {
	i.LineTotal = i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Qty)))
}
