package discounts

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopadmin-backend/internal/catalog"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
	"github.com/angelmondragon/shopadmin-backend/pkg/enums"
)

type DiscountDTO struct {
	ID        int64               `json:"id"`
	ProductID int64               `json:"product_id"`
	Type      enums.DiscountType  `json:"type"`
	Value     decimal.Decimal     `json:"value"`
	StartAt   *time.Time          `json:"start_at"`
	EndAt     *time.Time          `json:"end_at"`
	IsActive  bool                `json:"is_active"`
	Product   *catalog.ProductDTO `json:"product,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func NewDiscountDTO(d *models.ProductDiscount) DiscountDTO {
	return DiscountDTO{
		ID:        d.ID,
		ProductID: d.ProductID,
		Type:      d.Type,
		Value:     d.Value,
		StartAt:   d.StartAt,
		EndAt:     d.EndAt,
		IsActive:  d.IsActive,
		Product:   catalog.NewProductDTO(d.Product),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// PriceDTO is the result of applying a discount to a caller supplied price.
type PriceDTO struct {
	BasePrice      decimal.Decimal `json:"base_price"`
	EffectivePrice decimal.Decimal `json:"effective_price"`
	IsValid        bool            `json:"is_valid"`
}
