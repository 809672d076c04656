package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/shopadmin-backend/internal/repo"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
)

// Repository reads the catalog reference tables that other modules point at.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository bound to the provided DB handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// FindProduct loads a product or returns gorm.ErrRecordNotFound.
func (r *Repository) FindProduct(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.DB(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *Repository) ProductExists(ctx context.Context, id int64) (bool, error) {
	return r.Exists(ctx, &models.Product{}, id)
}

func (r *Repository) ShopExists(ctx context.Context, id int64) (bool, error) {
	return r.Exists(ctx, &models.Shop{}, id)
}

func (r *Repository) UserExists(ctx context.Context, id int64) (bool, error) {
	return r.Exists(ctx, &models.User{}, id)
}

// ProductAttributeExists reports whether a product attribute row exists.
func (r *Repository) ProductAttributeExists(ctx context.Context, id int64) (bool, error) {
	return r.Exists(ctx, &models.ProductAttribute{}, id)
}
