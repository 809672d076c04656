package apitokens

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/angelmondragon/shopadmin-backend/internal/repo"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
	"github.com/angelmondragon/shopadmin-backend/pkg/pagination"
)

// Repository handles api_tokens persistence.
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

// FindByHash loads the token with its owning user. Soft-deleted users are not preloaded.
func (r *Repository) FindByHash(ctx context.Context, hash string) (*models.APIToken, error) {
	var token models.APIToken
	if err := r.DB(ctx).
		Preload("User").
		Where("token_hash = ?", hash).
		First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// TouchUsage records when and from where the token was last presented.
func (r *Repository) TouchUsage(ctx context.Context, id int64, at time.Time, ip string) error {
	updates := map[string]any{"last_used_at": at}
	if ip != "" {
		updates["ip"] = ip
	}
	return r.DB(ctx).
		Model(&models.APIToken{}).
		Where("id = ?", id).
		UpdateColumns(updates).Error
}

func (r *Repository) Create(ctx context.Context, token *models.APIToken) error {
	return r.DB(ctx).Create(token).Error
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.APIToken, error) {
	var token models.APIToken
	if err := r.DB(ctx).Where("id = ?", id).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// ListByUser pages a user's tokens, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID int64, params pagination.Params) (pagination.Page[models.APIToken], error) {
	query := r.DB(ctx).Model(&models.APIToken{}).Where("user_id = ?", userID)
	return pagination.Find[models.APIToken](query, params, func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC").Order("id DESC")
	})
}

func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	return r.DeleteByID(ctx, &models.APIToken{}, id)
}

func (r *Repository) UserExists(ctx context.Context, userID int64) (bool, error) {
	return r.Exists(ctx, &models.User{}, userID)
}
