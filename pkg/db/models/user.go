package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/shopadmin-backend/pkg/enums"
)

// User is the identity owning tokens, carts, orders and social accounts.
type User struct {
	ID              int64               `gorm:"column:id;primaryKey;autoIncrement"`
	Name            string              `gorm:"column:name;not null"`
	Email           string              `gorm:"column:email;not null;uniqueIndex"`
	EmailVerifiedAt *time.Time          `gorm:"column:email_verified_at"`
	Password        *string             `gorm:"column:password"`
	Mobile          *string             `gorm:"column:mobile;size:30;index"`
	OptionalPhone   *string             `gorm:"column:optional_phone;size:30"`
	Address         *string             `gorm:"column:address"`
	FCMToken        *string             `gorm:"column:fcm_token"`
	IsBanned        bool                `gorm:"column:is_banned;not null;default:false;index"`
	Role            enums.UserRole      `gorm:"column:role;not null;default:customer;index"`
	Status          *string             `gorm:"column:status;index"`
	Zone            *string             `gorm:"column:zone;index"`
	District        *string             `gorm:"column:district;index"`
	Area            *string             `gorm:"column:area;index"`
	Lat             decimal.NullDecimal `gorm:"column:lat;type:decimal(10,7)"`
	Lon             decimal.NullDecimal `gorm:"column:lon;type:decimal(10,7)"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt       gorm.DeletedAt      `gorm:"column:deleted_at;index"`
}
