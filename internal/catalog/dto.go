package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
)

// ProductDTO is the read-only product summary embedded in other payloads.
type ProductDTO struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	ThumbnailURL *string         `json:"thumbnail_url"`
	Photos       []string        `json:"photos"`
	Price        decimal.Decimal `json:"price"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewProductDTO maps p, returning nil for a nil product.
func NewProductDTO(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	photos := p.Photos
	if photos == nil {
		photos = []string{}
	}
	return &ProductDTO{
		ID:           p.ID,
		Name:         p.Name,
		ThumbnailURL: p.ThumbnailURL,
		Photos:       photos,
		Price:        p.Price,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
