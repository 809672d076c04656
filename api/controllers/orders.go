package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopadmin-backend/api/middleware"
	"github.com/angelmondragon/shopadmin-backend/api/responses"
	"github.com/angelmondragon/shopadmin-backend/api/validators"
	"github.com/angelmondragon/shopadmin-backend/internal/orders"
	"github.com/angelmondragon/shopadmin-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
	"github.com/angelmondragon/shopadmin-backend/pkg/logger"
)

type orderCustomerRequest struct {
	CustomerName    *string          `json:"customer_name" validate:"omitempty,max=255"`
	CustomerPhone   *string          `json:"customer_phone" validate:"omitempty,max=50"`
	ShippingAddress *string          `json:"shipping_address" validate:"omitempty,max=500"`
	Zone            *string          `json:"zone" validate:"omitempty,max=255"`
	District        *string          `json:"district" validate:"omitempty,max=255"`
	Area            *string          `json:"area" validate:"omitempty,max=255"`
	Lat             *decimal.Decimal `json:"lat"`
	Lon             *decimal.Decimal `json:"lon"`
}

func (c orderCustomerRequest) toCustomer() orders.Customer {
	return orders.Customer{
		CustomerName:    c.CustomerName,
		CustomerPhone:   c.CustomerPhone,
		ShippingAddress: c.ShippingAddress,
		Zone:            c.Zone,
		District:        c.District,
		Area:            c.Area,
		Lat:             c.Lat,
		Lon:             c.Lon,
	}
}

type orderItemRequest struct {
	ProductID   int64           `json:"product_id"`
	ShopID      int64           `json:"shop_id"`
	AttributeID *int64          `json:"attribute_id"`
	Qty         int             `json:"qty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type createOrderRequest struct {
	orderCustomerRequest
	UserID        *int64             `json:"user_id" validate:"omitempty,min=1"`
	PaymentStatus *string            `json:"payment_status" validate:"omitempty,oneof=unpaid paid refunded"`
	ShippingFee   decimal.Decimal    `json:"shipping_fee"`
	Discount      decimal.Decimal    `json:"discount"`
	Note          *string            `json:"note"`
	Items         []orderItemRequest `json:"items" validate:"required,min=1"`
}

type updateOrderRequest struct {
	orderCustomerRequest
	PaymentStatus *string          `json:"payment_status" validate:"omitempty,oneof=unpaid paid refunded"`
	ShippingFee   *decimal.Decimal `json:"shipping_fee"`
	Discount      *decimal.Decimal `json:"discount"`
	Note          *string          `json:"note"`
}

type changeOrderStatusRequest struct {
	StatusID int64   `json:"status_id" validate:"required,min=1"`
	Note     *string `json:"note"`
}

func orderUnavailable() error {
	return pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable")
}

// orderActor attributes history entries to the caller when one is authenticated.
func orderActor(r *http.Request) *int64 {
	if id := middleware.UserIDFromContext(r.Context()); id != 0 {
		return &id
	}
	return nil
}

// CreateOrder handles POST /orders. The buyer defaults to the authenticated user.
func CreateOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, orderUnavailable())
			return
		}

		var payload createOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		userID := middleware.UserIDFromContext(r.Context())
		if payload.UserID != nil {
			userID = *payload.UserID
		}

		items := make([]orders.ItemInput, 0, len(payload.Items))
		for _, item := range payload.Items {
			items = append(items, orders.ItemInput{
				ProductID:   item.ProductID,
				ShopID:      item.ShopID,
				AttributeID: item.AttributeID,
				Qty:         item.Qty,
				UnitPrice:   item.UnitPrice,
			})
		}

		order, err := svc.Create(r.Context(), orderActor(r), orders.CreateInput{
			UserID:        userID,
			Customer:      payload.toCustomer(),
			PaymentStatus: payload.PaymentStatus,
			ShippingFee:   payload.ShippingFee,
			Discount:      payload.Discount,
			Note:          validators.SanitizeOptional(payload.Note),
			Items:         items,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, "Order created successfully", order)
	}
}

func ListOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, orderUnavailable())
			return
		}

		var (
			filter orders.ListFilter
			err    error
		)
		if filter.UserID, err = validators.ParseQueryInt64(r, "user_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter.Status = validators.ParseQueryString(r, "status")
		if raw := validators.ParseQueryString(r, "payment_status"); raw != nil {
			status := enums.PaymentStatus(*raw)
			filter.PaymentStatus = &status
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
		responses.WriteSuccess(w, "Orders retrieved successfully", page)
	}
}

func GetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, orderUnavailable())
			return
		}

		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Order retrieved successfully", order)
	}
}

func UpdateOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, orderUnavailable())
			return
		}

		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Update(r.Context(), id, orders.UpdateInput{
			Customer:      payload.toCustomer(),
			PaymentStatus: payload.PaymentStatus,
			ShippingFee:   payload.ShippingFee,
			Discount:      payload.Discount,
			Note:          payload.Note,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Order updated successfully", order)
	}
}

// ChangeOrderStatus handles POST /orders/{id}/status.
func ChangeOrderStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, orderUnavailable())
			return
		}

		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload changeOrderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.ChangeStatus(r.Context(), id, orderActor(r), orders.StatusInput{
			StatusID: payload.StatusID,
			Note:     validators.SanitizeOptional(payload.Note),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Order status updated successfully", order)
	}
}

func DeleteOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, orderUnavailable())
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
		responses.WriteSuccess(w, "Order deleted successfully", nil)
	}
}
