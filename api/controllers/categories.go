package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopadmin-backend/api/responses"
	"github.com/angelmondragon/shopadmin-backend/api/validators"
	"github.com/angelmondragon/shopadmin-backend/internal/categories"
	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
	"github.com/angelmondragon/shopadmin-backend/pkg/logger"
)

type categoryRequest struct {
	ParentID        *int64           `json:"parent_id" validate:"omitempty,min=0"`
	Name            *string          `json:"name" validate:"omitempty,max=50"`
	OrderLevel      *int             `json:"order_level"`
	CommisionRate   *decimal.Decimal `json:"commision_rate"`
	Banner          *string          `json:"banner" validate:"omitempty,max=100"`
	Icon            *string          `json:"icon" validate:"omitempty,max=100"`
	CoverImage      *string          `json:"cover_image" validate:"omitempty,max=100"`
	Featured        *bool            `json:"featured"`
	Top             *bool            `json:"top"`
	Digital         *bool            `json:"digital"`
	Slug            *string          `json:"slug" validate:"omitempty,max=255"`
	MetaTitle       *string          `json:"meta_title" validate:"omitempty,max=255"`
	MetaDescription *string          `json:"meta_description"`
}

func (c categoryRequest) toInput() categories.Input {
	return categories.Input{
		ParentID:        c.ParentID,
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
	}
}

type createCategoryRequest struct {
	categoryRequest
	Name *string `json:"name" validate:"required,max=50"`
}

func categoryUnavailable() error {
	return pkgerrors.New(pkgerrors.CodeInternal, "category service unavailable")
}

func CreateCategory(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, categoryUnavailable())
			return
		}

		var payload createCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input := payload.toInput()
		input.Name = payload.Name

		category, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, "Category created successfully", category)
	}
}

func ListCategories(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, categoryUnavailable())
			return
		}

		var (
			filter categories.ListFilter
			err    error
		)
		if filter.ParentID, err = validators.ParseQueryInt64(r, "parent_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.Level, err = validators.ParseQueryInt64(r, "level"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
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
		responses.WriteSuccess(w, "Categories retrieved successfully", page)
	}
}

func GetCategory(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, categoryUnavailable())
			return
		}

		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Category retrieved successfully", category)
	}
}

func UpdateCategory(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, categoryUnavailable())
			return
		}

		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload categoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Category updated successfully", category)
	}
}

// DeleteCategory promotes the children of the removed category to roots.
func DeleteCategory(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, categoryUnavailable())
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
		responses.WriteSuccess(w, "Category deleted successfully", nil)
	}
}
