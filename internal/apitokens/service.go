package apitokens

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/shopadmin-backend/pkg/db"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
	"github.com/angelmondragon/shopadmin-backend/pkg/pagination"
	"github.com/angelmondragon/shopadmin-backend/pkg/security"
)

// Service manages the lifecycle of API tokens.
type Service interface {
	Issue(ctx context.Context, userID int64, input IssueInput) (*IssuedTokenDTO, error)
	List(ctx context.Context, userID int64, params pagination.Params) (pagination.Page[TokenDTO], error)
	Revoke(ctx context.Context, tokenID int64) error
}

// IssueInput holds the validated payload to mint a token.
type IssueInput struct {
	Name      string
	Scopes    []string
	ExpiresAt *time.Time
}

type service struct {
	repo     *Repository
	generate func() (string, string, error)
	now      func() time.Time
}

// NewService constructs the token management service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("api token repository required")
	}
	return &service{repo: repo, generate: security.GenerateToken, now: time.Now}, nil
}

// Issue stores the hash of a fresh secret and returns the plaintext exactly once.
func (s *service) Issue(ctx context.Context, userID int64, input IssueInput) (*IssuedTokenDTO, error) {
	ok, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return nil, db.Wrap(err, "lookup user")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "User not found")
	}

	fields := pkgerrors.FieldErrors{}
	if input.ExpiresAt != nil && !input.ExpiresAt.After(s.now()) {
		fields.Add("expires_at", "The expires at field must be a date after now.")
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	plain, hash, err := s.generate()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate token")
	}

	token := &models.APIToken{
		UserID:    userID,
		Name:      strings.TrimSpace(input.Name),
		TokenHash: hash,
		Scopes:    normalizeScopes(input.Scopes),
		ExpiresAt: input.ExpiresAt,
	}
	if err := s.repo.Create(ctx, token); err != nil {
		return nil, db.Wrap(err, "create api token")
	}

	return &IssuedTokenDTO{TokenDTO: NewTokenDTO(token), PlainTextToken: plain}, nil
}

func (s *service) List(ctx context.Context, userID int64, params pagination.Params) (pagination.Page[TokenDTO], error) {
	page, err := s.repo.ListByUser(ctx, userID, params)
	if err != nil {
		return pagination.Page[TokenDTO]{}, db.Wrap(err, "list api tokens")
	}
	items := make([]TokenDTO, 0, len(page.Data))
	for i := range page.Data {
		items = append(items, NewTokenDTO(&page.Data[i]))
	}
	return pagination.NewPage(items, params, page.Total), nil
}

func (s *service) Revoke(ctx context.Context, tokenID int64) error {
	deleted, err := s.repo.Delete(ctx, tokenID)
	if err != nil {
		return db.Wrap(err, "delete api token")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "API token not found")
	}
	return nil
}

func normalizeScopes(scopes []string) []string {
	out := make([]string, 0, len(scopes))
	seen := make(map[string]struct{}, len(scopes))
	for _, scope := range scopes {
		scope = strings.TrimSpace(scope)
		if scope == "" {
			continue
		}
		if _, ok := seen[scope]; ok {
			continue
		}
		seen[scope] = struct{}{}
		out = append(out, scope)
	}
	return out
}

