package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is a self-referential tree; ParentID 0 marks a root.
type Category struct {
	ID              int64           `gorm:"column:id;primaryKey;autoIncrement"`
	ParentID        int64           `gorm:"column:parent_id;not null;default:0;index"`
	Level           int             `gorm:"column:level;not null;default:0;index"`
	Name            string          `gorm:"column:name;size:50;not null"`
	OrderLevel      int             `gorm:"column:order_level;not null;default:0"`
	CommisionRate   decimal.Decimal `gorm:"column:commision_rate;type:decimal(8,2);not null;default:0"`
	Banner          *string         `gorm:"column:banner;size:100"`
	Icon            *string         `gorm:"column:icon;size:100"`
	CoverImage      *string         `gorm:"column:cover_image;size:100"`
	Featured        int             `gorm:"column:featured;not null;default:0"`
	Top             int             `gorm:"column:top;not null;default:0"`
	Digital         int             `gorm:"column:digital;not null;default:0"`
	Slug            *string         `gorm:"column:slug;size:255;index"`
	MetaTitle       *string         `gorm:"column:meta_title;size:255"`
	MetaDescription *string         `gorm:"column:meta_description"`
	Children        []Category      `gorm:"foreignKey:ParentID"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
