package carts

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopadmin-backend/internal/catalog"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
	"github.com/angelmondragon/shopadmin-backend/pkg/enums"
)

type CartDTO struct {
	ID         int64            `json:"id"`
	UserID     int64            `json:"user_id"`
	Status     enums.CartStatus `json:"status"`
	TotalItems int              `json:"total_items"`
	Subtotal   decimal.Decimal  `json:"subtotal"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// CartDetailDTO is a cart with every line, active or not.
type CartDetailDTO struct {
	CartDTO
	Items []CartItemDTO `json:"items"`
}

type CartItemDTO struct {
	ID            int64                `json:"id"`
	CartID        *int64               `json:"cart_id"`
	ProductID     int64                `json:"product_id"`
	ShopID        int64                `json:"shop_id"`
	AttributeID   *int64               `json:"attribute_id"`
	Qty           int                  `json:"qty"`
	UnitPrice     decimal.Decimal      `json:"unit_price"`
	ResellerPrice decimal.NullDecimal  `json:"reseller_price"`
	LineTotal     decimal.Decimal      `json:"line_total"`
	Status        enums.CartItemStatus `json:"status"`
	Product       *catalog.ProductDTO  `json:"product,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

func NewCartDTO(c *models.Cart) CartDTO {
	return CartDTO{
		ID:         c.ID,
		UserID:     c.UserID,
		Status:     c.Status,
		TotalItems: c.TotalItems,
		Subtotal:   c.Subtotal,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// NewCartDetailDTO maps c and its lines; a cart without lines gets an empty array.
func NewCartDetailDTO(c *models.Cart) CartDetailDTO {
	dto := CartDetailDTO{CartDTO: NewCartDTO(c), Items: make([]CartItemDTO, 0, len(c.Items))}
	for i := range c.Items {
		dto.Items = append(dto.Items, NewCartItemDTO(&c.Items[i]))
	}
	return dto
}

func NewCartItemDTO(i *models.CartItem) CartItemDTO {
	return CartItemDTO{
		ID:            i.ID,
		CartID:        i.CartID,
		ProductID:     i.ProductID,
		ShopID:        i.ShopID,
		AttributeID:   i.AttributeID,
		Qty:           i.Qty,
		UnitPrice:     i.UnitPrice,
		ResellerPrice: i.ResellerPrice,
		LineTotal:     i.LineTotal,
		Status:        i.Status,
		Product:       catalog.NewProductDTO(i.Product),
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}
