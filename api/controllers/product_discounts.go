package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopadmin-backend/api/responses"
	"github.com/angelmondragon/shopadmin-backend/api/validators"
	"github.com/angelmondragon/shopadmin-backend/internal/discounts"
	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
	"github.com/angelmondragon/shopadmin-backend/pkg/logger"
)

type createDiscountRequest struct {
	ProductID int64            `json:"product_id" validate:"required,min=1"`
	Type      string           `json:"type" validate:"required,oneof=flat percentage"`
	Value     *decimal.Decimal `json:"value" validate:"required"`
	StartAt   validators.Date  `json:"start_at"`
	EndAt     validators.Date  `json:"end_at"`
	IsActive  *bool            `json:"is_active"`
}

func (p createDiscountRequest) CheckFields(fields pkgerrors.FieldErrors) {
	p.StartAt.Check(fields, "start_at")
	p.EndAt.Check(fields, "end_at")
}

type updateDiscountRequest struct {
	Type     *string          `json:"type" validate:"omitempty,oneof=flat percentage"`
	Value    *decimal.Decimal `json:"value"`
	StartAt  validators.Date  `json:"start_at"`
	EndAt    validators.Date  `json:"end_at"`
	IsActive *bool            `json:"is_active"`
}

func (p updateDiscountRequest) CheckFields(fields pkgerrors.FieldErrors) {
	p.StartAt.Check(fields, "start_at")
	p.EndAt.Check(fields, "end_at")
}

func discountUnavailable() error {
	return pkgerrors.New(pkgerrors.CodeInternal, "discount service unavailable")
}

// CreateProductDiscount handles POST /product-discounts.
func CreateProductDiscount(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, discountUnavailable())
			return
		}

		var payload createDiscountRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		discount, err := svc.Create(r.Context(), discounts.CreateInput{
			ProductID: payload.ProductID,
			Type:      payload.Type,
			Value:     *payload.Value,
			StartAt:   payload.StartAt.Value,
			EndAt:     payload.EndAt.Value,
			IsActive:  payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, "Product discount created successfully", discount)
	}
}

// ListProductDiscounts handles GET /product-discounts?product_id=.
func ListProductDiscounts(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, discountUnavailable())
			return
		}

		productID, err := validators.ParseQueryInt64(r, "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params, err := validators.ParsePage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), productID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Product discounts retrieved successfully", page)
	}
}

func GetProductDiscount(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, discountUnavailable())
			return
		}

		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		discount, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Product discount retrieved successfully", discount)
	}
}

func UpdateProductDiscount(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, discountUnavailable())
			return
		}

		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateDiscountRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		discount, err := svc.Update(r.Context(), id, discounts.UpdateInput{
			Type:         payload.Type,
			Value:        payload.Value,
			StartAt:      payload.StartAt.Value,
			EndAt:        payload.EndAt.Value,
			ClearStartAt: payload.StartAt.Cleared(),
			ClearEndAt:   payload.EndAt.Cleared(),
			IsActive:     payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Product discount updated successfully", discount)
	}
}

func DeleteProductDiscount(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, discountUnavailable())
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
		responses.WriteSuccess(w, "Product discount deleted successfully", nil)
	}
}

// ProductDiscountPrice handles GET /product-discounts/{id}/price?price=.
func ProductDiscountPrice(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, discountUnavailable())
			return
		}

		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		price, err := validators.ParseQueryDecimal(r, "price")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Price(r.Context(), id, price)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Effective price calculated", result)
	}
}
