package controllers

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/shopadmin-backend/api/responses"
	"github.com/angelmondragon/shopadmin-backend/api/validators"
	"github.com/angelmondragon/shopadmin-backend/internal/attributes"
	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
	"github.com/angelmondragon/shopadmin-backend/pkg/logger"
)

type createAttributeRequest struct {
	Name   string `json:"name" validate:"required,max=255"`
	Status *bool  `json:"status" validate:"required"`
}

type updateAttributeRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=255"`
	Status *bool   `json:"status"`
}

type createAttributeValueRequest struct {
	AttributeID int64   `json:"attribute_id" validate:"required,min=1"`
	Value       string  `json:"value" validate:"required,max=255"`
	ColorCode   *string `json:"color_code" validate:"omitempty,max=7"`
	Status      *bool   `json:"status" validate:"required"`
}

type updateAttributeValueRequest struct {
	Value     *string `json:"value" validate:"omitempty,min=1,max=255"`
	ColorCode *string `json:"color_code" validate:"omitempty,max=7"`
	Status    *bool   `json:"status"`
}

// CreateAttribute handles POST /attributes.
func CreateAttribute(svc attributes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "attribute service unavailable"))
			return
		}

		var payload createAttributeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		attr, err := svc.Create(r.Context(), attributes.CreateInput{
			Name:   validators.SanitizeString(payload.Name, 255),
			Status: *payload.Status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, "Attribute created successfully", attr)
	}
}

// ListAttributes handles GET /attributes with an optional status filter.
func ListAttributes(svc attributes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "attribute service unavailable"))
			return
		}

		status, err := validators.ParseQueryBool(r, "status")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Attributes retrieved successfully", list)
	}
}

func GetAttribute(svc attributes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "attribute service unavailable"))
			return
		}

		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		attr, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Attribute retrieved successfully", attr)
	}
}

func UpdateAttribute(svc attributes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "attribute service unavailable"))
			return
		}

		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateAttributeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		attr, err := svc.Update(r.Context(), id, attributes.UpdateInput{
			Name:   payload.Name,
			Status: payload.Status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Attribute updated successfully", attr)
	}
}

func DeleteAttribute(svc attributes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "attribute service unavailable"))
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
		responses.WriteSuccess(w, "Attribute deleted successfully", nil)
	}
}

// CreateAttributeValue handles POST /attribute-values.
func CreateAttributeValue(svc attributes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "attribute service unavailable"))
			return
		}

		var payload createAttributeValueRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		value, err := svc.CreateValue(r.Context(), attributes.CreateValueInput{
			AttributeID: payload.AttributeID,
			Value:       validators.SanitizeString(payload.Value, 255),
			ColorCode:   validators.SanitizeOptional(payload.ColorCode),
			Status:      *payload.Status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, "Attribute value created successfully", value)
	}
}

// UpdateAttributeValue handles PUT /attribute-values/{id}. An empty color_code clears it.
func UpdateAttributeValue(svc attributes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "attribute service unavailable"))
			return
		}

		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateAttributeValueRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := attributes.UpdateValueInput{Value: payload.Value, Status: payload.Status}
		if payload.ColorCode != nil {
			if strings.TrimSpace(*payload.ColorCode) == "" {
				input.ClearColor = true
			} else {
				input.ColorCode = validators.SanitizeOptional(payload.ColorCode)
			}
		}

		value, err := svc.UpdateValue(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Attribute value updated successfully", value)
	}
}

func DeleteAttributeValue(svc attributes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "attribute service unavailable"))
			return
		}

		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteValue(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Attribute value deleted successfully", nil)
	}
}
