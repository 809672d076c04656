package orders

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/shopadmin-backend/internal/repo"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
	"github.com/angelmondragon/shopadmin-backend/pkg/enums"
	"github.com/angelmondragon/shopadmin-backend/pkg/pagination"
)

// Repository persists orders with their lines and status history.
type Repository struct {
	repo.Base
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: r.Base.WithTx(tx)}
}

type ListFilter struct {
	UserID        *int64
	Status        *string
	PaymentStatus *enums.PaymentStatus
}

func withDetail(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product").
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("History.Status")
}

// CreateOrder inserts the order row only; lines and history are written separately.
func (r *Repository) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB(ctx).Omit(clause.Associations).Create(order).Error
}

func (r *Repository) CreateItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.DB(ctx).Omit(clause.Associations).Create(&items).Error
}

func (r *Repository) AppendHistory(ctx context.Context, entry *models.OrderStatusHistory) error {
	return r.DB(ctx).Omit(clause.Associations).Create(entry).Error
}

func (r *Repository) SaveOrder(ctx context.Context, order *models.Order) error {
	return r.DB(ctx).Omit(clause.Associations).Save(order).Error
}

func (r *Repository) FindOrder(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	if err := r.DB(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindOrderDetail loads an order with lines and history, oldest entries first.
func (r *Repository) FindOrderDetail(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	if err := r.DB(ctx).Scopes(withDetail).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *Repository) ListOrders(ctx context.Context, filter ListFilter, params pagination.Params) (pagination.Page[models.Order], error) {
	query := r.DB(ctx).Model(&models.Order{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *filter.PaymentStatus)
	}
	return pagination.Find[models.Order](query, params, func(db *gorm.DB) *gorm.DB {
		return db.Order("id DESC")
	})
}

// DeleteOrder removes the order together with its lines and history.
func (r *Repository) DeleteOrder(ctx context.Context, id int64) (bool, error) {
	if err := r.DB(ctx).Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
		return false, err
	}
	if err := r.DB(ctx).Where("order_id = ?", id).Delete(&models.OrderStatusHistory{}).Error; err != nil {
		return false, err
	}
	return r.DeleteByID(ctx, &models.Order{}, id)
}

func (r *Repository) FindStatus(ctx context.Context, id int64) (*models.OrderStatus, error) {
	var status models.OrderStatus
	if err := r.DB(ctx).Where("id = ?", id).First(&status).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *Repository) FindStatusByCode(ctx context.Context, code string) (*models.OrderStatus, error) {
	var status models.OrderStatus
	if err := r.DB(ctx).Where("code = ?", code).First(&status).Error; err != nil {
		return nil, err
	}
	return &status, nil
}
