package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopadmin-backend/pkg/enums"
)

type Order struct {
	ID              int64                `gorm:"column:id;primaryKey;autoIncrement"`
	UserID          int64                `gorm:"column:user_id;not null;index"`
	User            *User                `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	OrderNumber     string               `gorm:"column:order_number;not null;uniqueIndex"`
	Status          string               `gorm:"column:status;not null;default:pending;index"`
	PaymentStatus   enums.PaymentStatus  `gorm:"column:payment_status;not null;default:unpaid;index"`
	CustomerName    *string              `gorm:"column:customer_name"`
	CustomerPhone   *string              `gorm:"column:customer_phone;size:30"`
	ShippingAddress *string              `gorm:"column:shipping_address"`
	Zone            *string              `gorm:"column:zone"`
	District        *string              `gorm:"column:district"`
	Area            *string              `gorm:"column:area"`
	Lat             decimal.NullDecimal  `gorm:"column:lat;type:decimal(10,7)"`
	Lon             decimal.NullDecimal  `gorm:"column:lon;type:decimal(10,7)"`
	Subtotal        decimal.Decimal      `gorm:"column:subtotal;type:decimal(12,2);not null;default:0"`
	ShippingFee     decimal.Decimal      `gorm:"column:shipping_fee;type:decimal(12,2);not null;default:0"`
	Discount        decimal.Decimal      `gorm:"column:discount;type:decimal(12,2);not null;default:0"`
	Total           decimal.Decimal      `gorm:"column:total;type:decimal(12,2);not null;default:0"`
	Note            *string              `gorm:"column:note"`
	Items           []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History         []OrderStatusHistory `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

// ComputeTotal sets Total to subtotal + shipping - discount, floored at zero.
func (o *Order) ComputeTotal() {
	total := o.Subtotal.Add(o.ShippingFee).Sub(o.Discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	o.Total = total
}

type OrderItem struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID     int64           `gorm:"column:order_id;not null;index"`
	ProductID   int64           `gorm:"column:product_id;not null;index"`
	Product     *Product        `gorm:"foreignKey:ProductID"`
	ShopID      int64           `gorm:"column:shop_id;not null;index"`
	AttributeID *int64          `gorm:"column:attribute_id"`
	Qty         int             `gorm:"column:qty;not null"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:decimal(12,2);not null"`
	LineTotal   decimal.Decimal `gorm:"column:line_total;type:decimal(12,2);not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderStatus is the seeded lookup of status codes referenced by history rows.
type OrderStatus struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Code      string    `gorm:"column:code;size:50;not null;uniqueIndex"`
	Name      string    `gorm:"column:name;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderStatusHistory is append-only. A nil ChangedBy is the system actor.
type OrderStatusHistory struct {
	ID        int64        `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID   int64        `gorm:"column:order_id;not null;index"`
	StatusID  int64        `gorm:"column:status_id;not null"`
	Status    *OrderStatus `gorm:"foreignKey:StatusID"`
	Note      *string      `gorm:"column:note"`
	ChangedBy *int64       `gorm:"column:changed_by"`
	CreatedAt time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time    `gorm:"column:updated_at;autoUpdateTime"`
}

func (OrderStatusHistory) TableName() string { return "order_status_history" }
