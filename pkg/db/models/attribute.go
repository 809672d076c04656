package models

import "time"

type Attribute struct {
	ID        int64            `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string           `gorm:"column:name;size:255;not null;uniqueIndex"`
	Status    bool             `gorm:"column:status;not null"`
	Values    []AttributeValue `gorm:"foreignKey:AttributeID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

type AttributeValue struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	AttributeID int64     `gorm:"column:attribute_id;not null;index"`
	Value       string    `gorm:"column:value;size:255;not null"`
	ColorCode   *string   `gorm:"column:color_code;size:7"`
	Status      bool      `gorm:"column:status;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
