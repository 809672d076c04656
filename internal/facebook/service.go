package facebook

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/angelmondragon/shopadmin-backend/pkg/config"
	"github.com/angelmondragon/shopadmin-backend/pkg/db"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
	"github.com/angelmondragon/shopadmin-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
	"github.com/angelmondragon/shopadmin-backend/pkg/graph"
	"github.com/angelmondragon/shopadmin-backend/pkg/logger"
	"github.com/angelmondragon/shopadmin-backend/pkg/metrics"
	"github.com/angelmondragon/shopadmin-backend/pkg/pagination"
	"github.com/angelmondragon/shopadmin-backend/pkg/security"
)

const (
	msgUserRequired     = "User is required"
	msgUserInvalid      = "The selected user id is invalid."
	msgAccountNotFound  = "Facebook account not found"
	msgAccountNotOwned  = "Facebook account does not belong to user"
	msgPageNotFound     = "Facebook page not found"
	msgPageNotOwned     = "Facebook page does not belong to user"
	msgProductNotFound  = "Product not found"
	msgPostNotFound     = "Content not found"
	msgPostNotOwned     = "Content does not belong to user"
	msgPublishFailed    = "Failed to publish content"
	msgStatusInvalid    = "The selected status is invalid."
	defaultCaption      = "New product"
	publishKindPhoto    = "photo"
	publishKindFeed     = "feed"
	publishStatusOK     = "published"
	publishStatusFailed = "failed"
)

// Publisher is the subset of the Graph client the service drives.
type Publisher interface {
	EdgeURL(pageID, edge string) string
	PublishPhoto(ctx context.Context, pageID, accessToken, imageURL, caption string) (*graph.Response, error)
	PublishFeed(ctx context.Context, pageID, accessToken, message string) (*graph.Response, error)
}

// Actor identifies who a request acts for. UserID, when set, overrides the
// authenticated identity.
type Actor struct {
	IdentityUserID int64
	UserID         *int64
}

// Service manages linked facebook accounts and pages and publishes product posts.
type Service interface {
	CreateAccount(ctx context.Context, actor Actor, input CreateAccountInput) (*AccountDTO, error)
	ListAccounts(ctx context.Context, actor Actor, params pagination.Params) (pagination.Page[AccountDTO], error)
	CreatePage(ctx context.Context, actor Actor, input CreatePageInput) (*PageDTO, error)
	ListPages(ctx context.Context, actor Actor, accountID *int64, params pagination.Params) (pagination.Page[PageDTO], error)

	Publish(ctx context.Context, actor Actor, input PublishInput) (*PostDTO, error)
	ListPosts(ctx context.Context, actor Actor, filter PostFilter, params pagination.Params) (pagination.Page[PostDTO], error)
	Republish(ctx context.Context, actor Actor, id int64, input RepublishInput) (*PostDTO, error)
	DeletePost(ctx context.Context, actor Actor, id int64) error
}

type CreateAccountInput struct {
	FBUserID string
	FBName   string
}

type CreatePageInput struct {
	FacebookAccountID int64
	PageID            string
	PageName          string
	PageAccessToken   string
	Category          string
}

type PublishInput struct {
	FacebookPageID int64
	ProductID      int64
	Caption        *string
	ImageURL       *string
}

type RepublishInput struct {
	FBPostID *string
	Status   *string
}

// Deps bundles the service collaborators.
type Deps struct {
	Repo      *Repository
	Publisher Publisher
	Cipher    security.Cipher
	Storage   config.StorageConfig
	Metrics   *metrics.PublishMetrics
	Logger    *logger.Logger
}

type service struct {
	repo      *Repository
	publisher Publisher
	cipher    security.Cipher
	storage   config.StorageConfig
	metrics   *metrics.PublishMetrics
	logg      *logger.Logger
}

// NewService constructs the facebook service.
func NewService(deps Deps) (Service, error) {
	if deps.Repo == nil {
		return nil, fmt.Errorf("facebook repository required")
	}
	if deps.Publisher == nil {
		return nil, fmt.Errorf("graph publisher required")
	}
	if deps.Cipher == nil {
		return nil, fmt.Errorf("token cipher required")
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:      deps.Repo,
		publisher: deps.Publisher,
		cipher:    deps.Cipher,
		storage:   deps.Storage,
		metrics:   deps.Metrics,
		logg:      deps.Logger,
	}, nil
}

func (s *service) CreateAccount(ctx context.Context, actor Actor, input CreateAccountInput) (*AccountDTO, error) {
	userID, err := s.resolveUser(ctx, actor)
	if err != nil {
		return nil, err
	}
	account := &models.FacebookAccount{
		UserID:   userID,
		FBUserID: strings.TrimSpace(input.FBUserID),
		FBName:   strings.TrimSpace(input.FBName),
	}
	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return nil, db.Wrap(err, "create facebook account")
	}
	dto := NewAccountDTO(account)
	return &dto, nil
}

func (s *service) ListAccounts(ctx context.Context, actor Actor, params pagination.Params) (pagination.Page[AccountDTO], error) {
	page, err := s.repo.ListAccounts(ctx, filterUser(actor), params)
	if err != nil {
		return pagination.Page[AccountDTO]{}, db.Wrap(err, "list facebook accounts")
	}
	items := make([]AccountDTO, 0, len(page.Data))
	for i := range page.Data {
		items = append(items, NewAccountDTO(&page.Data[i]))
	}
	return pagination.NewPage(items, params, page.Total), nil
}

func (s *service) CreatePage(ctx context.Context, actor Actor, input CreatePageInput) (*PageDTO, error) {
	userID, err := s.resolveUser(ctx, actor)
	if err != nil {
		return nil, err
	}

	account, err := s.repo.FindAccount(ctx, input.FacebookAccountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgAccountNotFound)
		}
		return nil, db.Wrap(err, "load facebook account")
	}
	if account.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, msgAccountNotOwned)
	}

	sealed, err := s.cipher.Encrypt(input.PageAccessToken)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encrypt page access token")
	}
	page := &models.FacebookPage{
		UserID:            userID,
		FacebookAccountID: account.ID,
		PageID:            strings.TrimSpace(input.PageID),
		PageName:          strings.TrimSpace(input.PageName),
		PageAccessToken:   sealed,
		Category:          strings.TrimSpace(input.Category),
	}
	if err := s.repo.CreatePage(ctx, page); err != nil {
		return nil, db.Wrap(err, "create facebook page")
	}
	dto := NewPageDTO(page)
	return &dto, nil
}

func (s *service) ListPages(ctx context.Context, actor Actor, accountID *int64, params pagination.Params) (pagination.Page[PageDTO], error) {
	page, err := s.repo.ListPages(ctx, PageFilter{UserID: filterUser(actor), FacebookAccountID: accountID}, params)
	if err != nil {
		return pagination.Page[PageDTO]{}, db.Wrap(err, "list facebook pages")
	}
	items := make([]PageDTO, 0, len(page.Data))
	for i := range page.Data {
		items = append(items, NewPageDTO(&page.Data[i]))
	}
	return pagination.NewPage(items, params, page.Total), nil
}

func (s *service) ListPosts(ctx context.Context, actor Actor, filter PostFilter, params pagination.Params) (pagination.Page[PostDTO], error) {
	filter.UserID = filterUser(actor)
	page, err := s.repo.ListPosts(ctx, filter, params)
	if err != nil {
		return pagination.Page[PostDTO]{}, db.Wrap(err, "list facebook posts")
	}
	items := make([]PostDTO, 0, len(page.Data))
	for i := range page.Data {
		items = append(items, NewPostDTO(&page.Data[i]))
	}
	return pagination.NewPage(items, params, page.Total), nil
}

func (s *service) Republish(ctx context.Context, actor Actor, id int64, input RepublishInput) (*PostDTO, error) {
	post, err := s.ownedPost(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	status := enums.PostStatusRepublished
	if input.Status != nil {
		parsed, err := enums.ParsePostStatus(strings.TrimSpace(*input.Status))
		if err != nil {
			return nil, pkgerrors.FieldErrors{"status": {msgStatusInvalid}}.Err()
		}
		status = parsed
	}
	if input.FBPostID != nil {
		post.FBPostID = strings.TrimSpace(*input.FBPostID)
	}
	post.Status = status

	if err := s.repo.SavePost(ctx, post); err != nil {
		return nil, db.Wrap(err, "update facebook post")
	}
	dto := NewPostDTO(post)
	return &dto, nil
}

func (s *service) DeletePost(ctx context.Context, actor Actor, id int64) error {
	if _, err := s.ownedPost(ctx, actor, id); err != nil {
		return err
	}
	if _, err := s.repo.DeletePost(ctx, id); err != nil {
		return db.Wrap(err, "delete facebook post")
	}
	return nil
}

func (s *service) ownedPost(ctx context.Context, actor Actor, id int64) (*models.FacebookPost, error) {
	post, err := s.repo.FindPost(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgPostNotFound)
		}
		return nil, db.Wrap(err, "load facebook post")
	}
	if userID := filterUser(actor); userID != 0 && post.FacebookPage != nil && post.FacebookPage.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, msgPostNotOwned)
	}
	return post, nil
}

// resolveUser returns the acting user id. An explicit id must reference a live user.
func (s *service) resolveUser(ctx context.Context, actor Actor) (int64, error) {
	if actor.UserID == nil {
		if actor.IdentityUserID == 0 {
			return 0, pkgerrors.FieldErrors{"user_id": {msgUserRequired}}.Err()
		}
		return actor.IdentityUserID, nil
	}
	ok, err := s.repo.UserExists(ctx, *actor.UserID)
	if err != nil {
		return 0, db.Wrap(err, "lookup user")
	}
	if !ok {
		return 0, pkgerrors.FieldErrors{"user_id": {msgUserInvalid}}.Err()
	}
	return *actor.UserID, nil
}

func filterUser(actor Actor) int64 {
	if actor.UserID != nil {
		return *actor.UserID
	}
	return actor.IdentityUserID
}
