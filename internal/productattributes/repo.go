package productattributes

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/shopadmin-backend/internal/repo"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
	"github.com/angelmondragon/shopadmin-backend/pkg/pagination"
)

// Repository handles product_attributes persistence.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository bound to the provided DB handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// ListFilter holds optional equality filters.
type ListFilter struct {
	ProductID   *int64
	AttributeID *int64
	IsActive    *bool
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Product").Preload("Attribute").Preload("Value")
}

func (r *Repository) Create(ctx context.Context, pa *models.ProductAttribute) error {
	return r.DB(ctx).Omit(clause.Associations).Create(pa).Error
}

func (r *Repository) Save(ctx context.Context, pa *models.ProductAttribute) error {
	return r.DB(ctx).Omit(clause.Associations).Save(pa).Error
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.ProductAttribute, error) {
	var pa models.ProductAttribute
	if err := r.DB(ctx).Scopes(withRelations).Where("id = ?", id).First(&pa).Error; err != nil {
		return nil, err
	}
	return &pa, nil
}

func (r *Repository) List(ctx context.Context, filter ListFilter, params pagination.Params) (pagination.Page[models.ProductAttribute], error) {
	query := r.DB(ctx).Model(&models.ProductAttribute{})
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.AttributeID != nil {
		query = query.Where("attribute_id = ?", *filter.AttributeID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	return pagination.Find[models.ProductAttribute](query, params, withRelations, func(db *gorm.DB) *gorm.DB {
		return db.Order("id DESC")
	})
}

func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	return r.DeleteByID(ctx, &models.ProductAttribute{}, id)
}

func (r *Repository) ProductExists(ctx context.Context, id int64) (bool, error) {
	return r.Exists(ctx, &models.Product{}, id)
}

func (r *Repository) AttributeExists(ctx context.Context, id int64) (bool, error) {
	return r.Exists(ctx, &models.Attribute{}, id)
}

// FindValue loads an attribute value or returns gorm.ErrRecordNotFound.
func (r *Repository) FindValue(ctx context.Context, id int64) (*models.AttributeValue, error) {
	var value models.AttributeValue
	if err := r.DB(ctx).Where("id = ?", id).First(&value).Error; err != nil {
		return nil, err
	}
	return &value, nil
}
