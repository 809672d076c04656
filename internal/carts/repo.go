package carts

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/shopadmin-backend/internal/repo"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
	"github.com/angelmondragon/shopadmin-backend/pkg/enums"
	"github.com/angelmondragon/shopadmin-backend/pkg/pagination"
)

// Repository persists carts and their lines.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository bound to the provided DB handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: r.Base.WithTx(tx)}
}

type ListFilter struct {
	UserID *int64
	Status *enums.CartStatus
}

func withItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Preload("Items.Product")
}

func (r *Repository) CreateCart(ctx context.Context, cart *models.Cart) error {
	return r.DB(ctx).Omit(clause.Associations).Create(cart).Error
}

func (r *Repository) SaveCart(ctx context.Context, cart *models.Cart) error {
	return r.DB(ctx).Omit(clause.Associations).Save(cart).Error
}

// FindCart loads a cart without its lines.
func (r *Repository) FindCart(ctx context.Context, id int64) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB(ctx).Where("id = ?", id).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// FindCartWithItems loads a cart with every line and its product.
func (r *Repository) FindCartWithItems(ctx context.Context, id int64) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB(ctx).Scopes(withItems).Where("id = ?", id).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *Repository) ListCarts(ctx context.Context, filter ListFilter, params pagination.Params) (pagination.Page[models.Cart], error) {
	query := r.DB(ctx).Model(&models.Cart{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	return pagination.Find[models.Cart](query, params, func(db *gorm.DB) *gorm.DB {
		return db.Order("id DESC")
	})
}

// DeleteCart detaches the cart's lines and removes the cart.
func (r *Repository) DeleteCart(ctx context.Context, id int64) (bool, error) {
	if err := r.DB(ctx).Model(&models.CartItem{}).Where("cart_id = ?", id).Update("cart_id", nil).Error; err != nil {
		return false, err
	}
	return r.DeleteByID(ctx, &models.Cart{}, id)
}

func (r *Repository) CreateItem(ctx context.Context, item *models.CartItem) error {
	return r.DB(ctx).Omit(clause.Associations).Create(item).Error
}

func (r *Repository) SaveItem(ctx context.Context, item *models.CartItem) error {
	return r.DB(ctx).Omit(clause.Associations).Save(item).Error
}

// FindItem loads a line that belongs to cartID.
func (r *Repository) FindItem(ctx context.Context, cartID, itemID int64) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.DB(ctx).Where("id = ? AND cart_id = ?", itemID, cartID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repository) DeleteItem(ctx context.Context, id int64) (bool, error) {
	return r.DeleteByID(ctx, &models.CartItem{}, id)
}

// ActiveItems returns the lines that count toward the cart totals.
func (r *Repository) ActiveItems(ctx context.Context, cartID int64) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.DB(ctx).Where("cart_id = ? AND status = ?", cartID, enums.CartItemStatusActive).Find(&items).Error
	return items, err
}

// UpdateTotals writes the cached aggregates without touching other columns.
func (r *Repository) UpdateTotals(ctx context.Context, cart *models.Cart) error {
	return r.DB(ctx).Model(&models.Cart{}).Where("id = ?", cart.ID).UpdateColumns(map[string]any{
		"total_items": cart.TotalItems,
		"subtotal":    cart.Subtotal,
	}).Error
}
