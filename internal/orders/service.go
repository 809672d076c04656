package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/shopadmin-backend/pkg/db"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
	"github.com/angelmondragon/shopadmin-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
	"github.com/angelmondragon/shopadmin-backend/pkg/pagination"
)

const (
	msgOrderNotFound      = "Order not found"
	msgUserRequired       = "The user id field is required."
	msgUserInvalid        = "The selected user id is invalid."
	msgItemsRequired      = "The items field is required."
	msgStatusIDInvalid    = "The selected status id is invalid."
	msgPaymentInvalid     = "The selected payment status is invalid."
	msgShippingNegative   = "The shipping fee field must be at least 0."
	msgDiscountNegative   = "The discount field must be at least 0."
	orderNumberPrefix     = "ORD"
	orderNumberRandLength = 8
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type referenceChecker interface {
	ProductExists(ctx context.Context, id int64) (bool, error)
	ShopExists(ctx context.Context, id int64) (bool, error)
	UserExists(ctx context.Context, id int64) (bool, error)
	ProductAttributeExists(ctx context.Context, id int64) (bool, error)
}

// Service manages orders, their lines and the append-only status trail.
type Service interface {
	Create(ctx context.Context, actorID *int64, input CreateInput) (*OrderDetailDTO, error)
	List(ctx context.Context, filter ListFilter, params pagination.Params) (pagination.Page[OrderDTO], error)
	Get(ctx context.Context, id int64) (*OrderDetailDTO, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*OrderDetailDTO, error)
	ChangeStatus(ctx context.Context, id int64, actorID *int64, input StatusInput) (*OrderDetailDTO, error)
	Delete(ctx context.Context, id int64) error
}

// Customer holds the optional delivery fields shared by create and update.
type Customer struct {
	CustomerName    *string
	CustomerPhone   *string
	ShippingAddress *string
	Zone            *string
	District        *string
	Area            *string
	Lat             *decimal.Decimal
	Lon             *decimal.Decimal
}

type ItemInput struct {
	ProductID   int64
	ShopID      int64
	AttributeID *int64
	Qty         int
	UnitPrice   decimal.Decimal
}

type CreateInput struct {
	UserID        int64
	Customer      Customer
	PaymentStatus *string
	ShippingFee   decimal.Decimal
	Discount      decimal.Decimal
	Note          *string
	Items         []ItemInput
}

type UpdateInput struct {
	Customer      Customer
	PaymentStatus *string
	ShippingFee   *decimal.Decimal
	Discount      *decimal.Decimal
	Note          *string
}

type StatusInput struct {
	StatusID int64
	Note     *string
}

type service struct {
	repo *Repository
	refs referenceChecker
	tx   txRunner
	now  func() time.Time
}

// NewService constructs the order service.
func NewService(repo *Repository, refs referenceChecker, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if refs == nil {
		return nil, fmt.Errorf("reference checker required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, refs: refs, tx: tx, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, actorID *int64, input CreateInput) (*OrderDetailDTO, error) {
	fields := pkgerrors.FieldErrors{}
	if err := s.checkUser(ctx, fields, input.UserID); err != nil {
		return nil, err
	}
	if len(input.Items) == 0 {
		fields.Add("items", msgItemsRequired)
	}
	if err := s.checkItems(ctx, fields, input.Items); err != nil {
		return nil, err
	}
	paymentStatus := enums.PaymentStatusUnpaid
	if input.PaymentStatus != nil {
		parsed, err := enums.ParsePaymentStatus(*input.PaymentStatus)
		if err != nil {
			fields.Add("payment_status", msgPaymentInvalid)
		}
		paymentStatus = parsed
	}
	validateCharges(fields, &input.ShippingFee, &input.Discount)
	if err := fields.Err(); err != nil {
		return nil, err
	}

	pending, err := s.repo.FindStatusByCode(ctx, enums.OrderStatusPending)
	if err != nil {
		return nil, db.Wrap(err, "load pending status")
	}

	order := &models.Order{
		UserID:        input.UserID,
		OrderNumber:   s.orderNumber(),
		Status:        pending.Code,
		PaymentStatus: paymentStatus,
		ShippingFee:   input.ShippingFee,
		Discount:      input.Discount,
		Note:          input.Note,
	}
	applyCustomer(order, input.Customer)

	items := make([]models.OrderItem, 0, len(input.Items))
	subtotal := decimal.Zero
	for _, in := range input.Items {
		line := in.UnitPrice.Mul(decimal.NewFromInt(int64(in.Qty)))
		subtotal = subtotal.Add(line)
		items = append(items, models.OrderItem{
			ProductID:   in.ProductID,
			ShopID:      in.ShopID,
			AttributeID: in.AttributeID,
			Qty:         in.Qty,
			UnitPrice:   in.UnitPrice,
			LineTotal:   line,
		})
	}
	order.Subtotal = subtotal
	order.ComputeTotal()

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.CreateOrder(ctx, order); err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := txRepo.CreateItems(ctx, items); err != nil {
			return err
		}
		return txRepo.AppendHistory(ctx, &models.OrderStatusHistory{
			OrderID:   order.ID,
			StatusID:  pending.ID,
			ChangedBy: actorID,
		})
	})
	if err != nil {
		return nil, db.Wrap(err, "create order")
	}
	return s.Get(ctx, order.ID)
}

func (s *service) List(ctx context.Context, filter ListFilter, params pagination.Params) (pagination.Page[OrderDTO], error) {
	page, err := s.repo.ListOrders(ctx, filter, params)
	if err != nil {
		return pagination.Page[OrderDTO]{}, db.Wrap(err, "list orders")
	}
	items := make([]OrderDTO, 0, len(page.Data))
	for i := range page.Data {
		items = append(items, NewOrderDTO(&page.Data[i]))
	}
	return pagination.NewPage(items, params, page.Total), nil
}

func (s *service) Get(ctx context.Context, id int64) (*OrderDetailDTO, error) {
	order, err := s.repo.FindOrderDetail(ctx, id)
	if err != nil {
		return nil, mapOrderErr(err, "load order")
	}
	dto := NewOrderDetailDTO(order)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*OrderDetailDTO, error) {
	order, err := s.repo.FindOrder(ctx, id)
	if err != nil {
		return nil, mapOrderErr(err, "load order")
	}

	fields := pkgerrors.FieldErrors{}
	if input.PaymentStatus != nil {
		parsed, err := enums.ParsePaymentStatus(*input.PaymentStatus)
		if err != nil {
			fields.Add("payment_status", msgPaymentInvalid)
		}
		order.PaymentStatus = parsed
	}
	validateCharges(fields, input.ShippingFee, input.Discount)
	if err := fields.Err(); err != nil {
		return nil, err
	}

	applyCustomer(order, input.Customer)
	if input.ShippingFee != nil {
		order.ShippingFee = *input.ShippingFee
	}
	if input.Discount != nil {
		order.Discount = *input.Discount
	}
	assign(&order.Note, input.Note)
	order.ComputeTotal()

	if err := s.repo.SaveOrder(ctx, order); err != nil {
		return nil, db.Wrap(err, "update order")
	}
	return s.Get(ctx, id)
}

// ChangeStatus moves the order to statusID and appends a history entry.
func (s *service) ChangeStatus(ctx context.Context, id int64, actorID *int64, input StatusInput) (*OrderDetailDTO, error) {
	order, err := s.repo.FindOrder(ctx, id)
	if err != nil {
		return nil, mapOrderErr(err, "load order")
	}
	status, err := s.repo.FindStatus(ctx, input.StatusID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.FieldErrors{"status_id": {msgStatusIDInvalid}}.Err()
		}
		return nil, db.Wrap(err, "load order status")
	}

	order.Status = status.Code
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.SaveOrder(ctx, order); err != nil {
			return err
		}
		return txRepo.AppendHistory(ctx, &models.OrderStatusHistory{
			OrderID:   order.ID,
			StatusID:  status.ID,
			Note:      input.Note,
			ChangedBy: actorID,
		})
	})
	if err != nil {
		return nil, db.Wrap(err, "change order status")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	var deleted bool
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		deleted, err = s.repo.WithTx(tx).DeleteOrder(ctx, id)
		return err
	})
	if err != nil {
		return db.Wrap(err, "delete order")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, msgOrderNotFound)
	}
	return nil
}

func (s *service) checkUser(ctx context.Context, fields pkgerrors.FieldErrors, userID int64) error {
	if userID == 0 {
		fields.Add("user_id", msgUserRequired)
		return nil
	}
	ok, err := s.refs.UserExists(ctx, userID)
	if err != nil {
		return db.Wrap(err, "lookup user")
	}
	if !ok {
		fields.Add("user_id", msgUserInvalid)
	}
	return nil
}

// checkItems reports violations under indexed keys such as items.0.product_id.
func (s *service) checkItems(ctx context.Context, fields pkgerrors.FieldErrors, items []ItemInput) error {
	for i, item := range items {
		prefix := fmt.Sprintf("items.%d.", i)
		ok, err := s.refs.ProductExists(ctx, item.ProductID)
		if err != nil {
			return db.Wrap(err, "lookup product")
		}
		if !ok {
			fields.Add(prefix+"product_id", "The selected "+prefix+"product id is invalid.")
		}
		ok, err = s.refs.ShopExists(ctx, item.ShopID)
		if err != nil {
			return db.Wrap(err, "lookup shop")
		}
		if !ok {
			fields.Add(prefix+"shop_id", "The selected "+prefix+"shop id is invalid.")
		}
		if item.AttributeID != nil {
			ok, err = s.refs.ProductAttributeExists(ctx, *item.AttributeID)
			if err != nil {
				return db.Wrap(err, "lookup product attribute")
			}
			if !ok {
				fields.Add(prefix+"attribute_id", "The selected "+prefix+"attribute id is invalid.")
			}
		}
		if item.Qty < 1 {
			fields.Add(prefix+"qty", "The "+prefix+"qty field must be at least 1.")
		}
		if item.UnitPrice.IsNegative() {
			fields.Add(prefix+"unit_price", "The "+prefix+"unit price field must be at least 0.")
		}
	}
	return nil
}

// orderNumber renders ORD-<yyyymmdd>-<8 random hex>.
func (s *service) orderNumber() string {
	random := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:orderNumberRandLength]
	return fmt.Sprintf("%s-%s-%s", orderNumberPrefix, s.now().UTC().Format("20060102"), random)
}

// applyCustomer overwrites the provided fields; an empty string clears one.
func applyCustomer(order *models.Order, c Customer) {
	assign(&order.CustomerName, c.CustomerName)
	assign(&order.CustomerPhone, c.CustomerPhone)
	assign(&order.ShippingAddress, c.ShippingAddress)
	assign(&order.Zone, c.Zone)
	assign(&order.District, c.District)
	assign(&order.Area, c.Area)
	if c.Lat != nil {
		order.Lat = decimal.NewNullDecimal(*c.Lat)
	}
	if c.Lon != nil {
		order.Lon = decimal.NewNullDecimal(*c.Lon)
	}
}

func assign(dst **string, value *string) {
	if value == nil {
		return
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		*dst = nil
		return
	}
	*dst = &trimmed
}

func validateCharges(fields pkgerrors.FieldErrors, shippingFee, discount *decimal.Decimal) {
	if shippingFee != nil && shippingFee.IsNegative() {
		fields.Add("shipping_fee", msgShippingNegative)
	}
	if discount != nil && discount.IsNegative() {
		fields.Add("discount", msgDiscountNegative)
	}
}

func mapOrderErr(err error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, msgOrderNotFound)
	}
	return db.Wrap(err, action)
}
