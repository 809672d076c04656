package users

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
	"github.com/angelmondragon/shopadmin-backend/pkg/enums"
)

// UserDTO is the transport shape that omits credentials and device tokens.
type UserDTO struct {
	ID              int64               `json:"id"`
	Name            string              `json:"name"`
	Email           string              `json:"email"`
	EmailVerifiedAt *time.Time          `json:"email_verified_at"`
	Mobile          *string             `json:"mobile"`
	OptionalPhone   *string             `json:"optional_phone"`
	Address         *string             `json:"address"`
	IsBanned        bool                `json:"is_banned"`
	Role            enums.UserRole      `json:"role"`
	Status          *string             `json:"status"`
	Zone            *string             `json:"zone"`
	District        *string             `json:"district"`
	Area            *string             `json:"area"`
	Lat             decimal.NullDecimal `json:"lat"`
	Lon             decimal.NullDecimal `json:"lon"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		EmailVerifiedAt: u.EmailVerifiedAt,
		Mobile:          u.Mobile,
		OptionalPhone:   u.OptionalPhone,
		Address:         u.Address,
		IsBanned:        u.IsBanned,
		Role:            u.Role,
		Status:          u.Status,
		Zone:            u.Zone,
		District:        u.District,
		Area:            u.Area,
		Lat:             u.Lat,
		Lon:             u.Lon,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
