package categories

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
)

type CategoryDTO struct {
	ID              int64           `json:"id"`
	ParentID        int64           `json:"parent_id"`
	Level           int             `json:"level"`
	Name            string          `json:"name"`
	OrderLevel      int             `json:"order_level"`
	CommisionRate   decimal.Decimal `json:"commision_rate"`
	Banner          *string         `json:"banner"`
	Icon            *string         `json:"icon"`
	CoverImage      *string         `json:"cover_image"`
	Featured        int             `json:"featured"`
	Top             int             `json:"top"`
	Digital         int             `json:"digital"`
	Slug            *string         `json:"slug"`
	MetaTitle       *string         `json:"meta_title"`
	MetaDescription *string         `json:"meta_description"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CategoryDetailDTO always carries a children array, empty for leaves.
type CategoryDetailDTO struct {
	CategoryDTO
	Children []CategoryDTO `json:"children"`
}

func NewCategoryDTO(c *models.Category) CategoryDTO {
	return CategoryDTO{
		ID:              c.ID,
		ParentID:        c.ParentID,
		Level:           c.Level,
		Name:            c.Name,
		OrderLevel:      c.OrderLevel,
		CommisionRate:   c.CommisionRate,
		Banner:          c.Banner,
		Icon:            c.Icon,
		CoverImage:      c.CoverImage,
		Featured:        c.Featured,
		Top:             c.Top,
		Digital:         c.Digital,
		Slug:            c.Slug,
		MetaTitle:       c.MetaTitle,
		MetaDescription: c.MetaDescription,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func NewCategoryDetailDTO(c *models.Category) CategoryDetailDTO {
	dto := CategoryDetailDTO{CategoryDTO: NewCategoryDTO(c), Children: make([]CategoryDTO, 0, len(c.Children))}
	for i := range c.Children {
		dto.Children = append(dto.Children, NewCategoryDTO(&c.Children[i]))
	}
	return dto
}
