package discounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/shopadmin-backend/pkg/db"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
	"github.com/angelmondragon/shopadmin-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
	"github.com/angelmondragon/shopadmin-backend/pkg/pagination"
)

const (
	msgNotFound       = "Product discount not found"
	msgAlreadyExists  = "A discount already exists for this product"
	msgProductInvalid = "The selected product id is invalid."
	msgTypeInvalid    = "The selected type is invalid."
	msgValueNegative  = "The value field must be at least 0."
	msgEndBeforeStart = "The end at field must be a date after or equal to start at."
)

// Service manages the single discount a product may carry.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*DiscountDTO, error)
	List(ctx context.Context, productID *int64, params pagination.Params) (pagination.Page[DiscountDTO], error)
	Get(ctx context.Context, id int64) (*DiscountDTO, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*DiscountDTO, error)
	Delete(ctx context.Context, id int64) error
	Price(ctx context.Context, id int64, price decimal.Decimal) (*PriceDTO, error)
}

type CreateInput struct {
	ProductID int64
	Type      string
	Value     decimal.Decimal
	StartAt   *time.Time
	EndAt     *time.Time
	IsActive  *bool
}

// UpdateInput leaves nil fields untouched. ClearStartAt and ClearEndAt open
// the corresponding bound of the validity window.
type UpdateInput struct {
	Type         *string
	Value        *decimal.Decimal
	StartAt      *time.Time
	EndAt        *time.Time
	ClearStartAt bool
	ClearEndAt   bool
	IsActive     *bool
}

type service struct {
	repo *Repository
	now  func() time.Time
}

// NewService constructs the discount service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("discount repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*DiscountDTO, error) {
	fields := pkgerrors.FieldErrors{}
	ok, err := s.repo.ProductExists(ctx, input.ProductID)
	if err != nil {
		return nil, db.Wrap(err, "lookup product")
	}
	if !ok {
		fields.Add("product_id", msgProductInvalid)
	}
	discountType, typeErr := enums.ParseDiscountType(input.Type)
	if typeErr != nil {
		fields.Add("type", msgTypeInvalid)
	}
	validateTerms(fields, input.Value, input.StartAt, input.EndAt)
	if err := fields.Err(); err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsForProduct(ctx, input.ProductID)
	if err != nil {
		return nil, db.Wrap(err, "check existing discount")
	}
	if taken {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, msgAlreadyExists)
	}

	d := &models.ProductDiscount{
		ProductID: input.ProductID,
		Type:      discountType,
		Value:     input.Value,
		StartAt:   input.StartAt,
		EndAt:     input.EndAt,
		IsActive:  true,
	}
	if input.IsActive != nil {
		d.IsActive = *input.IsActive
	}
	if err := s.repo.Create(ctx, d); err != nil {
		// a concurrent create can pass the pre-check; the unique index decides
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, msgAlreadyExists)
		}
		return nil, db.Wrap(err, "create product discount")
	}
	return s.Get(ctx, d.ID)
}

func (s *service) List(ctx context.Context, productID *int64, params pagination.Params) (pagination.Page[DiscountDTO], error) {
	page, err := s.repo.List(ctx, productID, params)
	if err != nil {
		return pagination.Page[DiscountDTO]{}, db.Wrap(err, "list product discounts")
	}
	items := make([]DiscountDTO, 0, len(page.Data))
	for i := range page.Data {
		items = append(items, NewDiscountDTO(&page.Data[i]))
	}
	return pagination.NewPage(items, params, page.Total), nil
}

func (s *service) Get(ctx context.Context, id int64) (*DiscountDTO, error) {
	d, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := NewDiscountDTO(d)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*DiscountDTO, error) {
	d, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := pkgerrors.FieldErrors{}
	if input.Type != nil {
		discountType, err := enums.ParseDiscountType(*input.Type)
		if err != nil {
			fields.Add("type", msgTypeInvalid)
		}
		d.Type = discountType
	}
	if input.Value != nil {
		d.Value = *input.Value
	}
	switch {
	case input.ClearStartAt:
		d.StartAt = nil
	case input.StartAt != nil:
		d.StartAt = input.StartAt
	}
	switch {
	case input.ClearEndAt:
		d.EndAt = nil
	case input.EndAt != nil:
		d.EndAt = input.EndAt
	}
	if input.IsActive != nil {
		d.IsActive = *input.IsActive
	}
	validateTerms(fields, d.Value, d.StartAt, d.EndAt)
	if err := fields.Err(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, d); err != nil {
		return nil, db.Wrap(err, "update product discount")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return db.Wrap(err, "delete product discount")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, msgNotFound)
	}
	return nil
}

// Price applies the discount to price at the current instant.
func (s *service) Price(ctx context.Context, id int64, price decimal.Decimal) (*PriceDTO, error) {
	d, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	return &PriceDTO{
		BasePrice:      price,
		EffectivePrice: d.ApplyDiscount(price, now),
		IsValid:        d.IsValidAt(now),
	}, nil
}

func (s *service) load(ctx context.Context, id int64) (*models.ProductDiscount, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgNotFound)
		}
		return nil, db.Wrap(err, "load product discount")
	}
	return d, nil
}

func validateTerms(fields pkgerrors.FieldErrors, value decimal.Decimal, startAt, endAt *time.Time) {
	if value.IsNegative() {
		fields.Add("value", msgValueNegative)
	}
	if startAt != nil && endAt != nil && endAt.Before(*startAt) {
		fields.Add("end_at", msgEndBeforeStart)
	}
}
