package productattributes

import (
	"time"

	"github.com/angelmondragon/shopadmin-backend/internal/attributes"
	"github.com/angelmondragon/shopadmin-backend/internal/catalog"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
)

type ProductAttributeDTO struct {
	ID               int64                         `json:"id"`
	ProductID        int64                         `json:"product_id"`
	AttributeID      int64                         `json:"attribute_id"`
	AttributeValueID int64                         `json:"attribute_value_id"`
	Stock            int                           `json:"stock"`
	IsActive         bool                          `json:"is_active"`
	Product          *catalog.ProductDTO           `json:"product,omitempty"`
	Attribute        *attributeSummary             `json:"attribute,omitempty"`
	Value            *attributes.AttributeValueDTO `json:"value,omitempty"`
	CreatedAt        time.Time                     `json:"created_at"`
	UpdatedAt        time.Time                     `json:"updated_at"`
}

type attributeSummary struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Status bool   `json:"status"`
}

func NewProductAttributeDTO(pa *models.ProductAttribute) ProductAttributeDTO {
	dto := ProductAttributeDTO{
		ID:               pa.ID,
		ProductID:        pa.ProductID,
		AttributeID:      pa.AttributeID,
		AttributeValueID: pa.AttributeValueID,
		Stock:            pa.Stock,
		IsActive:         pa.IsActive,
		Product:          catalog.NewProductDTO(pa.Product),
		CreatedAt:        pa.CreatedAt,
		UpdatedAt:        pa.UpdatedAt,
	}
	if pa.Attribute != nil {
		dto.Attribute = &attributeSummary{ID: pa.Attribute.ID, Name: pa.Attribute.Name, Status: pa.Attribute.Status}
	}
	if pa.Value != nil {
		value := attributes.NewAttributeValueDTO(pa.Value)
		dto.Value = &value
	}
	return dto
}
