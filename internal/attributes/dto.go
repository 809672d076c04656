package attributes

import (
	"time"

	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
)

type AttributeDTO struct {
	ID        int64               `json:"id"`
	Name      string              `json:"name"`
	Status    bool                `json:"status"`
	Values    []AttributeValueDTO `json:"values"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

type AttributeValueDTO struct {
	ID          int64     `json:"id"`
	AttributeID int64     `json:"attribute_id"`
	Value       string    `json:"value"`
	ColorCode   *string   `json:"color_code"`
	Status      bool      `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewAttributeDTO maps a, always emitting values as an array.
func NewAttributeDTO(a *models.Attribute) AttributeDTO {
	values := make([]AttributeValueDTO, 0, len(a.Values))
	for i := range a.Values {
		values = append(values, NewAttributeValueDTO(&a.Values[i]))
	}
	return AttributeDTO{
		ID:        a.ID,
		Name:      a.Name,
		Status:    a.Status,
		Values:    values,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func NewAttributeValueDTO(v *models.AttributeValue) AttributeValueDTO {
	return AttributeValueDTO{
		ID:          v.ID,
		AttributeID: v.AttributeID,
		Value:       v.Value,
		ColorCode:   v.ColorCode,
		Status:      v.Status,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}
