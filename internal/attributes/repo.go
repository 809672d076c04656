package attributes

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/shopadmin-backend/internal/repo"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
)

// Repository handles attributes and attribute_values persistence.
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

func (r *Repository) Create(ctx context.Context, attr *models.Attribute) error {
	return r.DB(ctx).Omit(clause.Associations).Create(attr).Error
}

func (r *Repository) Save(ctx context.Context, attr *models.Attribute) error {
	return r.DB(ctx).Omit(clause.Associations).Save(attr).Error
}

// FindByID loads an attribute with its values ordered by id.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Attribute, error) {
	var attr models.Attribute
	if err := r.DB(ctx).
		Preload("Values", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("id = ?", id).
		First(&attr).Error; err != nil {
		return nil, err
	}
	return &attr, nil
}

// List returns every attribute, optionally filtered by status, with values.
func (r *Repository) List(ctx context.Context, status *bool) ([]models.Attribute, error) {
	query := r.DB(ctx).Model(&models.Attribute{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var attrs []models.Attribute
	if err := query.
		Preload("Values", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order("id ASC").
		Find(&attrs).Error; err != nil {
		return nil, err
	}
	return attrs, nil
}

// NameTaken reports whether another attribute already uses name. exceptID 0 checks all rows.
func (r *Repository) NameTaken(ctx context.Context, name string, exceptID int64) (bool, error) {
	query := r.DB(ctx).Model(&models.Attribute{}).Where("name = ?", name)
	if exceptID > 0 {
		query = query.Where("id <> ?", exceptID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes the attribute and its values.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	if err := r.DB(ctx).Where("attribute_id = ?", id).Delete(&models.AttributeValue{}).Error; err != nil {
		return false, err
	}
	return r.DeleteByID(ctx, &models.Attribute{}, id)
}

func (r *Repository) AttributeExists(ctx context.Context, id int64) (bool, error) {
	return r.Exists(ctx, &models.Attribute{}, id)
}

func (r *Repository) CreateValue(ctx context.Context, value *models.AttributeValue) error {
	return r.DB(ctx).Create(value).Error
}

func (r *Repository) SaveValue(ctx context.Context, value *models.AttributeValue) error {
	return r.DB(ctx).Save(value).Error
}

func (r *Repository) FindValue(ctx context.Context, id int64) (*models.AttributeValue, error) {
	var value models.AttributeValue
	if err := r.DB(ctx).Where("id = ?", id).First(&value).Error; err != nil {
		return nil, err
	}
	return &value, nil
}

func (r *Repository) DeleteValue(ctx context.Context, id int64) (bool, error) {
	return r.DeleteByID(ctx, &models.AttributeValue{}, id)
}
