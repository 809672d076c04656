package carts

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/shopadmin-backend/pkg/db"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
	"github.com/angelmondragon/shopadmin-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
	"github.com/angelmondragon/shopadmin-backend/pkg/pagination"
)

const (
	msgCartNotFound     = "Cart not found"
	msgItemNotFound     = "Cart item not found"
	msgUserRequired     = "The user id field is required."
	msgUserInvalid      = "The selected user id is invalid."
	msgProductInvalid   = "The selected product id is invalid."
	msgShopInvalid      = "The selected shop id is invalid."
	msgAttributeInvalid = "The selected attribute id is invalid."
	msgStatusInvalid    = "The selected status is invalid."
	msgPriceNegative    = "The unit price field must be at least 0."
	msgResellerNegative = "The reseller price field must be at least 0."
	msgQtyMin           = "The qty field must be at least 1."
)

// Service manages carts and keeps their cached totals in step with the lines.
type Service interface {
	Create(ctx context.Context, userID int64, status *string) (*CartDTO, error)
	List(ctx context.Context, filter ListFilter, params pagination.Params) (pagination.Page[CartDTO], error)
	Get(ctx context.Context, id int64) (*CartDetailDTO, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*CartDTO, error)
	Delete(ctx context.Context, id int64) error

	AddItem(ctx context.Context, cartID int64, input AddItemInput) (*CartDetailDTO, error)
	UpdateItem(ctx context.Context, cartID, itemID int64, input UpdateItemInput) (*CartDetailDTO, error)
	RemoveItem(ctx context.Context, cartID, itemID int64) (*CartDetailDTO, error)
}

type AddItemInput struct {
	ProductID     int64
	ShopID        int64
	AttributeID   *int64
	Qty           int
	UnitPrice     decimal.Decimal
	ResellerPrice *decimal.Decimal
	Status        *string
}

type UpdateItemInput struct {
	Qty           *int
	UnitPrice     *decimal.Decimal
	ResellerPrice *decimal.Decimal
	Status        *string
}

type referenceChecker interface {
	ProductExists(ctx context.Context, id int64) (bool, error)
	ShopExists(ctx context.Context, id int64) (bool, error)
	UserExists(ctx context.Context, id int64) (bool, error)
	ProductAttributeExists(ctx context.Context, id int64) (bool, error)
}

type service struct {
	repo     *Repository
	refs     referenceChecker
	dbClient *db.Client
}

// NewService constructs the cart service. refs answers existence checks for
// the catalog and users.
func NewService(repo *Repository, refs referenceChecker, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if refs == nil {
		return nil, fmt.Errorf("reference checker required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, refs: refs, dbClient: dbClient}, nil
}

func (s *service) Create(ctx context.Context, userID int64, status *string) (*CartDTO, error) {
	fields := pkgerrors.FieldErrors{}
	if userID == 0 {
		fields.Add("user_id", msgUserRequired)
	} else {
		ok, err := s.refs.UserExists(ctx, userID)
		if err != nil {
			return nil, db.Wrap(err, "lookup user")
		}
		if !ok {
			fields.Add("user_id", msgUserInvalid)
		}
	}
	cartStatus := enums.CartStatusActive
	if status != nil {
		parsed, err := enums.ParseCartStatus(*status)
		if err != nil {
			fields.Add("status", msgStatusInvalid)
		}
		cartStatus = parsed
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	cart := &models.Cart{UserID: userID, Status: cartStatus, Subtotal: decimal.Zero}
	if err := s.repo.CreateCart(ctx, cart); err != nil {
		return nil, db.Wrap(err, "create cart")
	}
	dto := NewCartDTO(cart)
	return &dto, nil
}

func (s *service) List(ctx context.Context, filter ListFilter, params pagination.Params) (pagination.Page[CartDTO], error) {
	page, err := s.repo.ListCarts(ctx, filter, params)
	if err != nil {
		return pagination.Page[CartDTO]{}, db.Wrap(err, "list carts")
	}
	items := make([]CartDTO, 0, len(page.Data))
	for i := range page.Data {
		items = append(items, NewCartDTO(&page.Data[i]))
	}
	return pagination.NewPage(items, params, page.Total), nil
}

func (s *service) Get(ctx context.Context, id int64) (*CartDetailDTO, error) {
	cart, err := s.repo.FindCartWithItems(ctx, id)
	if err != nil {
		return nil, mapCartErr(err, "load cart")
	}
	dto := NewCartDetailDTO(cart)
	return &dto, nil
}

func (s *service) UpdateStatus(ctx context.Context, id int64, status string) (*CartDTO, error) {
	cart, err := s.repo.FindCart(ctx, id)
	if err != nil {
		return nil, mapCartErr(err, "load cart")
	}
	parsed, err := enums.ParseCartStatus(status)
	if err != nil {
		return nil, pkgerrors.FieldErrors{"status": {msgStatusInvalid}}.Err()
	}
	cart.Status = parsed
	if err := s.repo.SaveCart(ctx, cart); err != nil {
		return nil, db.Wrap(err, "update cart")
	}
	dto := NewCartDTO(cart)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	var deleted bool
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		deleted, err = s.repo.WithTx(tx).DeleteCart(ctx, id)
		return err
	})
	if err != nil {
		return db.Wrap(err, "delete cart")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, msgCartNotFound)
	}
	return nil
}

func (s *service) AddItem(ctx context.Context, cartID int64, input AddItemInput) (*CartDetailDTO, error) {
	if _, err := s.repo.FindCart(ctx, cartID); err != nil {
		return nil, mapCartErr(err, "load cart")
	}
	if err := s.checkItemReferences(ctx, input); err != nil {
		return nil, err
	}

	fields := pkgerrors.FieldErrors{}
	validateLine(fields, &input.Qty, &input.UnitPrice, input.ResellerPrice)
	itemStatus := enums.CartItemStatusActive
	if input.Status != nil {
		parsed, err := enums.ParseCartItemStatus(*input.Status)
		if err != nil {
			fields.Add("status", msgStatusInvalid)
		}
		itemStatus = parsed
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	item := &models.CartItem{
		CartID:      &cartID,
		ProductID:   input.ProductID,
		ShopID:      input.ShopID,
		AttributeID: input.AttributeID,
		Qty:         input.Qty,
		UnitPrice:   input.UnitPrice,
		Status:      itemStatus,
	}
	if input.ResellerPrice != nil {
		item.ResellerPrice = decimal.NewNullDecimal(*input.ResellerPrice)
	}
	item.Recalculate()

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.CreateItem(ctx, item); err != nil {
			return err
		}
		return recomputeTotals(ctx, txRepo, cartID)
	})
	if err != nil {
		return nil, db.Wrap(err, "add cart item")
	}
	return s.Get(ctx, cartID)
}

func (s *service) UpdateItem(ctx context.Context, cartID, itemID int64, input UpdateItemInput) (*CartDetailDTO, error) {
	item, err := s.repo.FindItem(ctx, cartID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgItemNotFound)
		}
		return nil, db.Wrap(err, "load cart item")
	}

	fields := pkgerrors.FieldErrors{}
	validateLine(fields, input.Qty, input.UnitPrice, input.ResellerPrice)
	if input.Status != nil {
		parsed, err := enums.ParseCartItemStatus(*input.Status)
		if err != nil {
			fields.Add("status", msgStatusInvalid)
		}
		item.Status = parsed
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	if input.Qty != nil {
		item.Qty = *input.Qty
	}
	if input.UnitPrice != nil {
		item.UnitPrice = *input.UnitPrice
	}
	if input.ResellerPrice != nil {
		item.ResellerPrice = decimal.NewNullDecimal(*input.ResellerPrice)
	}
	item.Recalculate()

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.SaveItem(ctx, item); err != nil {
			return err
		}
		return recomputeTotals(ctx, txRepo, cartID)
	})
	if err != nil {
		return nil, db.Wrap(err, "update cart item")
	}
	return s.Get(ctx, cartID)
}

func (s *service) RemoveItem(ctx context.Context, cartID, itemID int64) (*CartDetailDTO, error) {
	item, err := s.repo.FindItem(ctx, cartID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgItemNotFound)
		}
		return nil, db.Wrap(err, "load cart item")
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := txRepo.DeleteItem(ctx, item.ID); err != nil {
			return err
		}
		return recomputeTotals(ctx, txRepo, cartID)
	})
	if err != nil {
		return nil, db.Wrap(err, "remove cart item")
	}
	return s.Get(ctx, cartID)
}

type refCheck struct {
	field  string
	msg    string
	id     int64
	exists func(context.Context, int64) (bool, error)
}

func (s *service) checkItemReferences(ctx context.Context, input AddItemInput) error {
	checks := []refCheck{
		{"product_id", msgProductInvalid, input.ProductID, s.refs.ProductExists},
		{"shop_id", msgShopInvalid, input.ShopID, s.refs.ShopExists},
	}
	if input.AttributeID != nil {
		checks = append(checks, refCheck{"attribute_id", msgAttributeInvalid, *input.AttributeID, s.refs.ProductAttributeExists})
	}

	fields := pkgerrors.FieldErrors{}
	for _, check := range checks {
		ok, err := check.exists(ctx, check.id)
		if err != nil {
			return db.Wrap(err, "lookup "+check.field)
		}
		if !ok {
			fields.Add(check.field, check.msg)
		}
	}
	return fields.Err()
}

// recomputeTotals refreshes the cart aggregates from its active lines:
// total_items is the summed quantity and subtotal the summed line totals.
func recomputeTotals(ctx context.Context, r *Repository, cartID int64) error {
	items, err := r.ActiveItems(ctx, cartID)
	if err != nil {
		return err
	}
	cart := &models.Cart{ID: cartID, Subtotal: decimal.Zero}
	for _, item := range items {
		cart.TotalItems += item.Qty
		cart.Subtotal = cart.Subtotal.Add(item.LineTotal)
	}
	return r.UpdateTotals(ctx, cart)
}

func validateLine(fields pkgerrors.FieldErrors, qty *int, unitPrice, resellerPrice *decimal.Decimal) {
	if qty != nil && *qty < 1 {
		fields.Add("qty", msgQtyMin)
	}
	if unitPrice != nil && unitPrice.IsNegative() {
		fields.Add("unit_price", msgPriceNegative)
	}
	if resellerPrice != nil && resellerPrice.IsNegative() {
		fields.Add("reseller_price", msgResellerNegative)
	}
}

func mapCartErr(err error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, msgCartNotFound)
	}
	return db.Wrap(err, action)
}
