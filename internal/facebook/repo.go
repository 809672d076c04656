package facebook

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/shopadmin-backend/internal/repo"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
	"github.com/angelmondragon/shopadmin-backend/pkg/enums"
	"github.com/angelmondragon/shopadmin-backend/pkg/pagination"
)

// Repository persists facebook accounts, pages and posts.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository bound to the provided DB handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// PageFilter narrows page listings. A zero UserID lists every user's pages.
type PageFilter struct {
	UserID            int64
	FacebookAccountID *int64
}

// PostFilter narrows post listings. A non-zero UserID limits to that user's pages.
type PostFilter struct {
	UserID         int64
	FacebookPageID *int64
	ProductID      *int64
	Status         *enums.PostStatus
}

func latestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("id DESC")
}

func withPostRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("FacebookPage").Preload("Product")
}

func (r *Repository) CreateAccount(ctx context.Context, account *models.FacebookAccount) error {
	return r.DB(ctx).Create(account).Error
}

func (r *Repository) FindAccount(ctx context.Context, id int64) (*models.FacebookAccount, error) {
	var account models.FacebookAccount
	if err := r.DB(ctx).Where("id = ?", id).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *Repository) ListAccounts(ctx context.Context, userID int64, params pagination.Params) (pagination.Page[models.FacebookAccount], error) {
	query := r.DB(ctx).Model(&models.FacebookAccount{})
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}
	return pagination.Find[models.FacebookAccount](query, params, latestFirst)
}

func (r *Repository) CreatePage(ctx context.Context, page *models.FacebookPage) error {
	return r.DB(ctx).Omit(clause.Associations).Create(page).Error
}

func (r *Repository) FindPage(ctx context.Context, id int64) (*models.FacebookPage, error) {
	var page models.FacebookPage
	if err := r.DB(ctx).Where("id = ?", id).First(&page).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *Repository) ListPages(ctx context.Context, filter PageFilter, params pagination.Params) (pagination.Page[models.FacebookPage], error) {
	query := r.DB(ctx).Model(&models.FacebookPage{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.FacebookAccountID != nil {
		query = query.Where("facebook_account_id = ?", *filter.FacebookAccountID)
	}
	return pagination.Find[models.FacebookPage](query, params, latestFirst)
}

func (r *Repository) CreatePost(ctx context.Context, post *models.FacebookPost) error {
	return r.DB(ctx).Omit(clause.Associations).Create(post).Error
}

func (r *Repository) SavePost(ctx context.Context, post *models.FacebookPost) error {
	return r.DB(ctx).Omit(clause.Associations).Save(post).Error
}

func (r *Repository) FindPost(ctx context.Context, id int64) (*models.FacebookPost, error) {
	var post models.FacebookPost
	if err := r.DB(ctx).Scopes(withPostRelations).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *Repository) ListPosts(ctx context.Context, filter PostFilter, params pagination.Params) (pagination.Page[models.FacebookPost], error) {
	query := r.DB(ctx).Model(&models.FacebookPost{})
	if filter.FacebookPageID != nil {
		query = query.Where("facebook_page_id = ?", *filter.FacebookPageID)
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.UserID != 0 {
		owned := r.DB(ctx).Model(&models.FacebookPage{}).Select("id").Where("user_id = ?", filter.UserID)
		query = query.Where("facebook_page_id IN (?)", owned)
	}
	return pagination.Find[models.FacebookPost](query, params, withPostRelations, latestFirst)
}

func (r *Repository) DeletePost(ctx context.Context, id int64) (bool, error) {
	return r.DeleteByID(ctx, &models.FacebookPost{}, id)
}

func (r *Repository) FindProduct(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.DB(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *Repository) UserExists(ctx context.Context, id int64) (bool, error) {
	return r.Exists(ctx, &models.User{}, id)
}

func (r *Repository) PageExists(ctx context.Context, id int64) (bool, error) {
	return r.Exists(ctx, &models.FacebookPage{}, id)
}
