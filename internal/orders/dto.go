package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopadmin-backend/internal/catalog"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
	"github.com/angelmondragon/shopadmin-backend/pkg/enums"
)

type OrderDTO struct {
	ID              int64               `json:"id"`
	UserID          int64               `json:"user_id"`
	OrderNumber     string              `json:"order_number"`
	Status          string              `json:"status"`
	PaymentStatus   enums.PaymentStatus `json:"payment_status"`
	CustomerName    *string             `json:"customer_name"`
	CustomerPhone   *string             `json:"customer_phone"`
	ShippingAddress *string             `json:"shipping_address"`
	Zone            *string             `json:"zone"`
	District        *string             `json:"district"`
	Area            *string             `json:"area"`
	Lat             decimal.NullDecimal `json:"lat"`
	Lon             decimal.NullDecimal `json:"lon"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	ShippingFee     decimal.Decimal     `json:"shipping_fee"`
	Discount        decimal.Decimal     `json:"discount"`
	Total           decimal.Decimal     `json:"total"`
	Note            *string             `json:"note"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// OrderDetailDTO adds the lines and the status trail.
type OrderDetailDTO struct {
	OrderDTO
	Items   []OrderItemDTO `json:"items"`
	History []HistoryDTO   `json:"history"`
}

type OrderItemDTO struct {
	ID          int64               `json:"id"`
	ProductID   int64               `json:"product_id"`
	ShopID      int64               `json:"shop_id"`
	AttributeID *int64              `json:"attribute_id"`
	Qty         int                 `json:"qty"`
	UnitPrice   decimal.Decimal     `json:"unit_price"`
	LineTotal   decimal.Decimal     `json:"line_total"`
	Product     *catalog.ProductDTO `json:"product,omitempty"`
}

type HistoryDTO struct {
	ID         int64     `json:"id"`
	StatusID   int64     `json:"status_id"`
	StatusCode string    `json:"status_code"`
	Note       *string   `json:"note"`
	ChangedBy  *int64    `json:"changed_by"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewOrderDTO(o *models.Order) OrderDTO {
	return OrderDTO{
		ID:              o.ID,
		UserID:          o.UserID,
		OrderNumber:     o.OrderNumber,
		Status:          o.Status,
		PaymentStatus:   o.PaymentStatus,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		ShippingAddress: o.ShippingAddress,
		Zone:            o.Zone,
		District:        o.District,
		Area:            o.Area,
		Lat:             o.Lat,
		Lon:             o.Lon,
		Subtotal:        o.Subtotal,
		ShippingFee:     o.ShippingFee,
		Discount:        o.Discount,
		Total:           o.Total,
		Note:            o.Note,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func NewOrderDetailDTO(o *models.Order) OrderDetailDTO {
	dto := OrderDetailDTO{
		OrderDTO: NewOrderDTO(o),
		Items:    make([]OrderItemDTO, 0, len(o.Items)),
		History:  make([]HistoryDTO, 0, len(o.History)),
	}
	for _, item := range o.Items {
		dto.Items = append(dto.Items, OrderItemDTO{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ShopID:      item.ShopID,
			AttributeID: item.AttributeID,
			Qty:         item.Qty,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
			Product:     catalog.NewProductDTO(item.Product),
		})
	}
	for _, entry := range o.History {
		h := HistoryDTO{
			ID:        entry.ID,
			StatusID:  entry.StatusID,
			Note:      entry.Note,
			ChangedBy: entry.ChangedBy,
			CreatedAt: entry.CreatedAt,
		}
		if entry.Status != nil {
			h.StatusCode = entry.Status.Code
		}
		dto.History = append(dto.History, h)
	}
	return dto
}
