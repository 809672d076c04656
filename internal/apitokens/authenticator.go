package apitokens

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/angelmondragon/shopadmin-backend/pkg/db"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
	"github.com/angelmondragon/shopadmin-backend/pkg/logger"
	"github.com/angelmondragon/shopadmin-backend/pkg/security"
)

const (
	MsgTokenMissing   = "API token missing"
	MsgTokenInvalid   = "Invalid or expired API token"
	MsgUserNotFound   = "Token user not found"
	MsgScopeForbidden = "Insufficient permission"
)

// Identity is the caller resolved from a bearer token.
type Identity struct {
	User  *models.User
	Token *models.APIToken
}

// UserID returns the owning user's id, or 0 for a nil identity.
func (i *Identity) UserID() int64 {
	if i == nil || i.User == nil {
		return 0
	}
	return i.User.ID
}

// Authenticator resolves a plaintext bearer token into an Identity.
type Authenticator interface {
	Authenticate(ctx context.Context, plain, ip, scope string) (*Identity, error)
}

type tokenStore interface {
	FindByHash(ctx context.Context, hash string) (*models.APIToken, error)
	TouchUsage(ctx context.Context, id int64, at time.Time, ip string) error
}

type authenticator struct {
	store tokenStore
	logg  *logger.Logger
	now   func() time.Time
}

// NewAuthenticator constructs the token authenticator.
func NewAuthenticator(store tokenStore, logg *logger.Logger) (Authenticator, error) {
	if store == nil {
		return nil, fmt.Errorf("token store required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &authenticator{store: store, logg: logg, now: time.Now}, nil
}

// Authenticate checks, in order: presence, hash lookup, validity window, owning user
// and scope. The usage stamp written on success never fails the request.
func (a *authenticator) Authenticate(ctx context.Context, plain, ip, scope string) (*Identity, error) {
	plain = strings.TrimSpace(plain)
	if plain == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, MsgTokenMissing)
	}

	token, err := a.store.FindByHash(ctx, security.HashToken(plain))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, MsgTokenInvalid)
		}
		return nil, db.Wrap(err, "lookup api token")
	}

	now := a.now().UTC()
	if !token.IsValid(now) {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, MsgTokenInvalid)
	}
	if token.User == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, MsgUserNotFound)
	}
	if !token.HasScope(scope) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, MsgScopeForbidden)
	}

	if err := a.store.TouchUsage(ctx, token.ID, now, ip); err != nil {
		logCtx := a.logg.WithTokenID(ctx, token.ID)
		a.logg.Warn(a.logg.WithField(logCtx, "error", err.Error()), "api_token.touch_failed")
	} else {
		token.LastUsedAt = &now
		if ip != "" {
			token.IP = &ip
		}
	}

	return &Identity{User: token.User, Token: token}, nil
}
