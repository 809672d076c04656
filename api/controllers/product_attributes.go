package controllers

import (
	"net/http"

	"github.com/angelmondragon/shopadmin-backend/api/responses"
	"github.com/angelmondragon/shopadmin-backend/api/validators"
	"github.com/angelmondragon/shopadmin-backend/internal/productattributes"
	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
	"github.com/angelmondragon/shopadmin-backend/pkg/logger"
)

type createProductAttributeRequest struct {
	ProductID        int64 `json:"product_id" validate:"required,min=1"`
	AttributeID      int64 `json:"attribute_id" validate:"required,min=1"`
	AttributeValueID int64 `json:"attribute_value_id" validate:"required,min=1"`
	Stock            *int  `json:"stock" validate:"required,min=0"`
	IsActive         *bool `json:"is_active"`
}

type updateProductAttributeRequest struct {
	ProductID        *int64 `json:"product_id" validate:"omitempty,min=1"`
	AttributeID      *int64 `json:"attribute_id" validate:"omitempty,min=1"`
	AttributeValueID *int64 `json:"attribute_value_id" validate:"omitempty,min=1"`
	Stock            *int   `json:"stock" validate:"omitempty,min=0"`
	IsActive         *bool  `json:"is_active"`
}

func productAttributeUnavailable() error {
	return pkgerrors.New(pkgerrors.CodeInternal, "product attribute service unavailable")
}

// CreateProductAttribute handles POST /product-attributes.
func CreateProductAttribute(svc productattributes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, productAttributeUnavailable())
			return
		}

		var payload createProductAttributeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pa, err := svc.Create(r.Context(), productattributes.CreateInput{
			ProductID:        payload.ProductID,
			AttributeID:      payload.AttributeID,
			AttributeValueID: payload.AttributeValueID,
			Stock:            *payload.Stock,
			IsActive:         payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, "Product attribute created successfully", pa)
	}
}

// ListProductAttributes handles GET /product-attributes?product_id=&attribute_id=&is_active=.
func ListProductAttributes(svc productattributes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, productAttributeUnavailable())
			return
		}

		var (
			filter productattributes.ListFilter
			err    error
		)
		if filter.ProductID, err = validators.ParseQueryInt64(r, "product_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.AttributeID, err = validators.ParseQueryInt64(r, "attribute_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.IsActive, err = validators.ParseQueryBool(r, "is_active"); err != nil {
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
		responses.WriteSuccess(w, "Product attributes retrieved successfully", page)
	}
}

func GetProductAttribute(svc productattributes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, productAttributeUnavailable())
			return
		}

		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pa, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Product attribute retrieved successfully", pa)
	}
}

func UpdateProductAttribute(svc productattributes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, productAttributeUnavailable())
			return
		}

		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductAttributeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pa, err := svc.Update(r.Context(), id, productattributes.UpdateInput{
			ProductID:        payload.ProductID,
			AttributeID:      payload.AttributeID,
			AttributeValueID: payload.AttributeValueID,
			Stock:            payload.Stock,
			IsActive:         payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Product attribute updated successfully", pa)
	}
}

func DeleteProductAttribute(svc productattributes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, productAttributeUnavailable())
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
		responses.WriteSuccess(w, "Product attribute deleted successfully", nil)
	}
}
