package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopadmin-backend/api/responses"
	"github.com/angelmondragon/shopadmin-backend/api/validators"
	"github.com/angelmondragon/shopadmin-backend/internal/users"
	"github.com/angelmondragon/shopadmin-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
	"github.com/angelmondragon/shopadmin-backend/pkg/logger"
)

type userProfileRequest struct {
	Mobile        *string          `json:"mobile" validate:"omitempty,max=30"`
	OptionalPhone *string          `json:"optional_phone" validate:"omitempty,max=30"`
	Address       *string          `json:"address" validate:"omitempty,max=500"`
	Status        *string          `json:"status" validate:"omitempty,max=50"`
	Zone          *string          `json:"zone" validate:"omitempty,max=255"`
	District      *string          `json:"district" validate:"omitempty,max=255"`
	Area          *string          `json:"area" validate:"omitempty,max=255"`
	Lat           *decimal.Decimal `json:"lat"`
	Lon           *decimal.Decimal `json:"lon"`
}

func (p userProfileRequest) toProfile() users.Profile {
	return users.Profile{
		Mobile:        p.Mobile,
		OptionalPhone: p.OptionalPhone,
		Address:       p.Address,
		Status:        p.Status,
		Zone:          p.Zone,
		District:      p.District,
		Area:          p.Area,
		Lat:           p.Lat,
		Lon:           p.Lon,
	}
}

type createUserRequest struct {
	userProfileRequest
	Name     string  `json:"name" validate:"required,max=255"`
	Email    string  `json:"email" validate:"required,email,max=255"`
	Password *string `json:"password" validate:"omitempty,min=8,max=255"`
	Role     *string `json:"role" validate:"omitempty,oneof=customer seller admin"`
	IsBanned *bool   `json:"is_banned"`
}

type updateUserRequest struct {
	userProfileRequest
	Name     *string `json:"name" validate:"omitempty,max=255"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Password *string `json:"password" validate:"omitempty,min=8,max=255"`
	Role     *string `json:"role" validate:"omitempty,oneof=customer seller admin"`
	IsBanned *bool   `json:"is_banned"`
}

func userUnavailable() error {
	return pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable")
}

func CreateUser(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, userUnavailable())
			return
		}

		var payload createUserRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Create(r.Context(), users.CreateInput{
			Name:     validators.SanitizeString(payload.Name, 255),
			Email:    payload.Email,
			Password: payload.Password,
			Role:     payload.Role,
			IsBanned: payload.IsBanned,
			Profile:  payload.toProfile(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, "User created successfully", user)
	}
}

func ListUsers(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, userUnavailable())
			return
		}

		var filter users.ListFilter
		if raw := validators.ParseQueryString(r, "role"); raw != nil {
			role := enums.UserRole(*raw)
			filter.Role = &role
		}
		filter.Status = validators.ParseQueryString(r, "status")
		params, err := validators.ParsePage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), filter, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Users retrieved successfully", page)
	}
}

func GetUser(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, userUnavailable())
			return
		}

		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "User retrieved successfully", user)
	}
}

func UpdateUser(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, userUnavailable())
			return
		}

		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateUserRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Update(r.Context(), id, users.UpdateInput{
			Name:     payload.Name,
			Email:    payload.Email,
			Password: payload.Password,
			Role:     payload.Role,
			IsBanned: payload.IsBanned,
			Profile:  payload.toProfile(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "User updated successfully", user)
	}
}

func DeleteUser(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, userUnavailable())
			return
		}

		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "User deleted successfully", nil)
	}
}
