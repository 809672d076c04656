package discounts

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/shopadmin-backend/internal/repo"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
	"github.com/angelmondragon/shopadmin-backend/pkg/pagination"
)

// Repository handles product_discounts persistence.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository bound to the provided DB handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func withProduct(db *gorm.DB) *gorm.DB {
	return db.Preload("Product")
}

func (r *Repository) Create(ctx context.Context, d *models.ProductDiscount) error {
	return r.DB(ctx).Omit(clause.Associations).Create(d).Error
}

func (r *Repository) Save(ctx context.Context, d *models.ProductDiscount) error {
	return r.DB(ctx).Omit(clause.Associations).Save(d).Error
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.ProductDiscount, error) {
	var d models.ProductDiscount
	if err := r.DB(ctx).Scopes(withProduct).Where("id = ?", id).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// ExistsForProduct reports whether productID already carries a discount.
func (r *Repository) ExistsForProduct(ctx context.Context, productID int64) (bool, error) {
	var count int64
	err := r.DB(ctx).Model(&models.ProductDiscount{}).Where("product_id = ?", productID).Count(&count).Error
	return count > 0, err
}

// List returns discounts latest first, optionally narrowed to one product.
func (r *Repository) List(ctx context.Context, productID *int64, params pagination.Params) (pagination.Page[models.ProductDiscount], error) {
	query := r.DB(ctx).Model(&models.ProductDiscount{})
	if productID != nil {
		query = query.Where("product_id = ?", *productID)
	}
	return pagination.Find[models.ProductDiscount](query, params, withProduct, func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC").Order("id DESC")
	})
}

func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	return r.DeleteByID(ctx, &models.ProductDiscount{}, id)
}

func (r *Repository) ProductExists(ctx context.Context, id int64) (bool, error) {
	return r.Exists(ctx, &models.Product{}, id)
}
