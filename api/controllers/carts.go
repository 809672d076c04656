package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopadmin-backend/api/middleware"
	"github.com/angelmondragon/shopadmin-backend/api/responses"
	"github.com/angelmondragon/shopadmin-backend/api/validators"
	"github.com/angelmondragon/shopadmin-backend/internal/carts"
	"github.com/angelmondragon/shopadmin-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
	"github.com/angelmondragon/shopadmin-backend/pkg/logger"
)

type createCartRequest struct {
	UserID *int64  `json:"user_id" validate:"omitempty,min=1"`
	Status *string `json:"status" validate:"omitempty,oneof=active checked_out abandoned"`
}

type updateCartRequest struct {
	Status string `json:"status" validate:"required,oneof=active checked_out abandoned"`
}

type addCartItemRequest struct {
	ProductID     int64            `json:"product_id" validate:"required,min=1"`
	ShopID        int64            `json:"shop_id" validate:"required,min=1"`
	AttributeID   *int64           `json:"attribute_id" validate:"omitempty,min=1"`
	Qty           int              `json:"qty" validate:"required,min=1"`
	UnitPrice     *decimal.Decimal `json:"unit_price" validate:"required"`
	ResellerPrice *decimal.Decimal `json:"reseller_price"`
	Status        *string          `json:"status" validate:"omitempty,oneof=active saved_for_later removed"`
}

type updateCartItemRequest struct {
	Qty           *int             `json:"qty" validate:"omitempty,min=1"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	ResellerPrice *decimal.Decimal `json:"reseller_price"`
	Status        *string          `json:"status" validate:"omitempty,oneof=active saved_for_later removed"`
}

func cartUnavailable() error {
	return pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable")
}

// CreateCart handles POST /carts. The owner defaults to the authenticated user.
func CreateCart(svc carts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, cartUnavailable())
			return
		}

		var payload createCartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		userID := middleware.UserIDFromContext(r.Context())
		if payload.UserID != nil {
			userID = *payload.UserID
		}

		cart, err := svc.Create(r.Context(), userID, payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, "Cart created successfully", cart)
	}
}

func ListCarts(svc carts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, cartUnavailable())
			return
		}

		var (
			filter carts.ListFilter
			err    error
		)
		if filter.UserID, err = validators.ParseQueryInt64(r, "user_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if raw := validators.ParseQueryString(r, "status"); raw != nil {
			status := enums.CartStatus(*raw)
			filter.Status = &status
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
		responses.WriteSuccess(w, "Carts retrieved successfully", page)
	}
}

func GetCart(svc carts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, cartUnavailable())
			return
		}

		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Cart retrieved successfully", cart)
	}
}

func UpdateCart(svc carts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, cartUnavailable())
			return
		}

		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := svc.UpdateStatus(r.Context(), id, payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Cart updated successfully", cart)
	}
}

func DeleteCart(svc carts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, cartUnavailable())
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
		responses.WriteSuccess(w, "Cart deleted successfully", nil)
	}
}

// AddCartItem handles POST /carts/{id}/items and returns the refreshed cart.
func AddCartItem(svc carts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, cartUnavailable())
			return
		}

		cartID, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := svc.AddItem(r.Context(), cartID, carts.AddItemInput{
			ProductID:     payload.ProductID,
			ShopID:        payload.ShopID,
			AttributeID:   payload.AttributeID,
			Qty:           payload.Qty,
			UnitPrice:     *payload.UnitPrice,
			ResellerPrice: payload.ResellerPrice,
			Status:        payload.Status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, "Cart item added successfully", cart)
	}
}

func UpdateCartItem(svc carts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, cartUnavailable())
			return
		}

		cartID, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := validators.PathID(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := svc.UpdateItem(r.Context(), cartID, itemID, carts.UpdateItemInput{
			Qty:           payload.Qty,
			UnitPrice:     payload.UnitPrice,
			ResellerPrice: payload.ResellerPrice,
			Status:        payload.Status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Cart item updated successfully", cart)
	}
}

func RemoveCartItem(svc carts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, cartUnavailable())
			return
		}

		cartID, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := validators.PathID(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := svc.RemoveItem(r.Context(), cartID, itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Cart item removed successfully", cart)
	}
}
