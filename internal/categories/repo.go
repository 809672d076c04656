package categories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/shopadmin-backend/internal/repo"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
	"github.com/angelmondragon/shopadmin-backend/pkg/pagination"
)

// Repository persists the category tree.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: r.Base.WithTx(tx)}
}

type ListFilter struct {
	ParentID *int64
	Level    *int64
}

func (r *Repository) Create(ctx context.Context, category *models.Category) error {
	return r.DB(ctx).Omit(clause.Associations).Create(category).Error
}

func (r *Repository) Save(ctx context.Context, category *models.Category) error {
	return r.DB(ctx).Omit(clause.Associations).Save(category).Error
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	if err := r.DB(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindWithChildren loads a category and its direct children in display order.
func (r *Repository) FindWithChildren(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	err := r.DB(ctx).
		Preload("Children", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_level DESC").Order("id ASC")
		}).
		Where("id = ?", id).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *Repository) List(ctx context.Context, filter ListFilter, params pagination.Params) (pagination.Page[models.Category], error) {
	query := r.DB(ctx).Model(&models.Category{})
	if filter.ParentID != nil {
		query = query.Where("parent_id = ?", *filter.ParentID)
	}
	if filter.Level != nil {
		query = query.Where("level = ?", *filter.Level)
	}
	return pagination.Find[models.Category](query, params, func(db *gorm.DB) *gorm.DB {
		return db.Order("order_level DESC").Order("id ASC")
	})
}

// SlugTaken reports whether another category already uses slug.
func (r *Repository) SlugTaken(ctx context.Context, slug string, exceptID int64) (bool, error) {
	var count int64
	query := r.DB(ctx).Model(&models.Category{}).Where("slug = ?", slug)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ReparentChildren moves the direct children of id to the root.
func (r *Repository) ReparentChildren(ctx context.Context, id int64) error {
	return r.DB(ctx).Model(&models.Category{}).
		Where("parent_id = ?", id).
		UpdateColumns(map[string]any{"parent_id": 0, "level": 0}).Error
}

func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	return r.DeleteByID(ctx, &models.Category{}, id)
}

// Children lists the direct children of parentID.
func (r *Repository) Children(ctx context.Context, parentID int64) ([]models.Category, error) {
	var children []models.Category
	if err := r.DB(ctx).Where("parent_id = ?", parentID).Order("id ASC").Find(&children).Error; err != nil {
		return nil, err
	}
	return children, nil
}

func (r *Repository) SetLevel(ctx context.Context, id int64, level int) error {
	return r.DB(ctx).Model(&models.Category{}).Where("id = ?", id).UpdateColumn("level", level).Error
}
