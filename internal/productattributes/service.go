package productattributes

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/angelmondragon/shopadmin-backend/pkg/db"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
	"github.com/angelmondragon/shopadmin-backend/pkg/pagination"
)

const (
	msgNotFound          = "Product attribute not found"
	msgProductInvalid    = "The selected product id is invalid."
	msgAttributeInvalid  = "The selected attribute id is invalid."
	msgValueInvalid      = "The selected attribute value id is invalid."
	msgValueNotInherited = "The selected attribute value does not belong to the attribute."
)

// Service manages product attribute combinations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*ProductAttributeDTO, error)
	List(ctx context.Context, filter ListFilter, params pagination.Params) (pagination.Page[ProductAttributeDTO], error)
	Get(ctx context.Context, id int64) (*ProductAttributeDTO, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*ProductAttributeDTO, error)
	Delete(ctx context.Context, id int64) error
}

type CreateInput struct {
	ProductID        int64
	AttributeID      int64
	AttributeValueID int64
	Stock            int
	IsActive         *bool
}

type UpdateInput struct {
	ProductID        *int64
	AttributeID      *int64
	AttributeValueID *int64
	Stock            *int
	IsActive         *bool
}

type service struct {
	repo *Repository
}

// NewService constructs the product attribute service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product attribute repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*ProductAttributeDTO, error) {
	if err := s.checkReferences(ctx, input.ProductID, input.AttributeID, input.AttributeValueID); err != nil {
		return nil, err
	}

	pa := &models.ProductAttribute{
		ProductID:        input.ProductID,
		AttributeID:      input.AttributeID,
		AttributeValueID: input.AttributeValueID,
		Stock:            input.Stock,
		IsActive:         true,
	}
	if input.IsActive != nil {
		pa.IsActive = *input.IsActive
	}
	if err := s.repo.Create(ctx, pa); err != nil {
		return nil, db.Wrap(err, "create product attribute")
	}
	return s.Get(ctx, pa.ID)
}

func (s *service) List(ctx context.Context, filter ListFilter, params pagination.Params) (pagination.Page[ProductAttributeDTO], error) {
	page, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return pagination.Page[ProductAttributeDTO]{}, db.Wrap(err, "list product attributes")
	}
	items := make([]ProductAttributeDTO, 0, len(page.Data))
	for i := range page.Data {
		items = append(items, NewProductAttributeDTO(&page.Data[i]))
	}
	return pagination.NewPage(items, params, page.Total), nil
}

func (s *service) Get(ctx context.Context, id int64) (*ProductAttributeDTO, error) {
	pa, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := NewProductAttributeDTO(pa)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*ProductAttributeDTO, error) {
	pa, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	productID, attributeID, valueID := pa.ProductID, pa.AttributeID, pa.AttributeValueID
	if input.ProductID != nil {
		productID = *input.ProductID
	}
	if input.AttributeID != nil {
		attributeID = *input.AttributeID
	}
	if input.AttributeValueID != nil {
		valueID = *input.AttributeValueID
	}
	if input.ProductID != nil || input.AttributeID != nil || input.AttributeValueID != nil {
		if err := s.checkReferences(ctx, productID, attributeID, valueID); err != nil {
			return nil, err
		}
	}

	pa.ProductID, pa.AttributeID, pa.AttributeValueID = productID, attributeID, valueID
	if input.Stock != nil {
		pa.Stock = *input.Stock
	}
	if input.IsActive != nil {
		pa.IsActive = *input.IsActive
	}
	if err := s.repo.Save(ctx, pa); err != nil {
		return nil, db.Wrap(err, "update product attribute")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return db.Wrap(err, "delete product attribute")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, msgNotFound)
	}
	return nil
}

func (s *service) load(ctx context.Context, id int64) (*models.ProductAttribute, error) {
	pa, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgNotFound)
		}
		return nil, db.Wrap(err, "load product attribute")
	}
	return pa, nil
}

// checkReferences collects every broken reference before reporting.
func (s *service) checkReferences(ctx context.Context, productID, attributeID, valueID int64) error {
	fields := pkgerrors.FieldErrors{}

	ok, err := s.repo.ProductExists(ctx, productID)
	if err != nil {
		return db.Wrap(err, "lookup product")
	}
	if !ok {
		fields.Add("product_id", msgProductInvalid)
	}

	attrOK, err := s.repo.AttributeExists(ctx, attributeID)
	if err != nil {
		return db.Wrap(err, "lookup attribute")
	}
	if !attrOK {
		fields.Add("attribute_id", msgAttributeInvalid)
	}

	value, err := s.repo.FindValue(ctx, valueID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		fields.Add("attribute_value_id", msgValueInvalid)
	case err != nil:
		return db.Wrap(err, "lookup attribute value")
	case attrOK && value.AttributeID != attributeID:
		fields.Add("attribute_value_id", msgValueNotInherited)
	}

	return fields.Err()
}
