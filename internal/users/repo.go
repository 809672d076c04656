package users

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/shopadmin-backend/internal/repo"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
	"github.com/angelmondragon/shopadmin-backend/pkg/enums"
	"github.com/angelmondragon/shopadmin-backend/pkg/pagination"
)

// Repository exposes user persistence. Reads skip soft-deleted rows.
type Repository struct {
	repo.Base
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

type ListFilter struct {
	Role   *enums.UserRole
	Status *string
}

func (r *Repository) Create(ctx context.Context, user *models.User) error {
	return r.DB(ctx).Omit(clause.Associations).Create(user).Error
}

func (r *Repository) Save(ctx context.Context, user *models.User) error {
	return r.DB(ctx).Omit(clause.Associations).Save(user).Error
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailTaken checks every row, soft-deleted included, since the unique index covers them all.
func (r *Repository) EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error) {
	var count int64
	query := r.DB(ctx).Unscoped().Model(&models.User{}).Where("LOWER(email) = LOWER(?)", email)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) List(ctx context.Context, filter ListFilter, params pagination.Params) (pagination.Page[models.User], error) {
	query := r.DB(ctx).Model(&models.User{})
	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	return pagination.Find[models.User](query, params, func(db *gorm.DB) *gorm.DB {
		return db.Order("id DESC")
	})
}

// SoftDelete stamps deleted_at and reports whether a live row existed.
func (r *Repository) SoftDelete(ctx context.Context, id int64) (bool, error) {
	return r.DeleteByID(ctx, &models.User{}, id)
}
