package apitokens

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
	"github.com/angelmondragon/shopadmin-backend/pkg/logger"
	"github.com/angelmondragon/shopadmin-backend/pkg/security"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.User{}, &models.APIToken{}))
	return conn
}

func seedToken(t *testing.T, conn *gorm.DB, plain string, scopes []string, expiresAt *time.Time) (*models.User, *models.APIToken) {
	t.Helper()
	user := &models.User{Name: "Ana", Email: t.Name() + "@example.com"}
	require.NoError(t, conn.Create(user).Error)
	token := &models.APIToken{
		UserID:    user.ID,
		Name:      "cli",
		TokenHash: security.HashToken(plain),
		Scopes:    scopes,
		ExpiresAt: expiresAt,
	}
	require.NoError(t, conn.Create(token).Error)
	return user, token
}

func newTestAuthenticator(t *testing.T, conn *gorm.DB) Authenticator {
	t.Helper()
	auth, err := NewAuthenticator(NewRepository(conn), logger.Nop())
	require.NoError(t, err)
	return auth
}

func requireCode(t *testing.T, err error, code pkgerrors.Code, msg string) {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	assert.Equal(t, code, typed.Code())
	assert.Equal(t, msg, typed.Message())
}

func TestAuthenticateMissingToken(t *testing.T) {
	auth := newTestAuthenticator(t, newTestDB(t))

	_, err := auth.Authenticate(context.Background(), "  ", "10.0.0.1", "")
	requireCode(t, err, pkgerrors.CodeUnauthorized, MsgTokenMissing)
}

func TestAuthenticateUnknownToken(t *testing.T) {
	auth := newTestAuthenticator(t, newTestDB(t))

	_, err := auth.Authenticate(context.Background(), "nope", "10.0.0.1", "")
	requireCode(t, err, pkgerrors.CodeUnauthorized, MsgTokenInvalid)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	conn := newTestDB(t)
	past := time.Now().Add(-time.Minute)
	seedToken(t, conn, "expired-secret", nil, &past)

	_, err := newTestAuthenticator(t, conn).Authenticate(context.Background(), "expired-secret", "", "")
	requireCode(t, err, pkgerrors.CodeUnauthorized, MsgTokenInvalid)
}

func TestAuthenticateSoftDeletedUser(t *testing.T) {
	conn := newTestDB(t)
	user, _ := seedToken(t, conn, "orphan-secret", nil, nil)
	require.NoError(t, conn.Delete(user).Error)

	_, err := newTestAuthenticator(t, conn).Authenticate(context.Background(), "orphan-secret", "", "")
	requireCode(t, err, pkgerrors.CodeUnauthorized, MsgUserNotFound)
}

func TestAuthenticateMissingScope(t *testing.T) {
	conn := newTestDB(t)
	_, token := seedToken(t, conn, "scoped-secret", []string{"catalog:read"}, nil)

	_, err := newTestAuthenticator(t, conn).Authenticate(context.Background(), "scoped-secret", "10.1.2.3", "facebook:publish")
	requireCode(t, err, pkgerrors.CodeForbidden, MsgScopeForbidden)

	var stored models.APIToken
	require.NoError(t, conn.First(&stored, token.ID).Error)
	assert.Nil(t, stored.LastUsedAt, "forbidden requests leave usage untouched")
	assert.Nil(t, stored.IP)
}

func TestAuthenticateSuccessStampsUsage(t *testing.T) {
	conn := newTestDB(t)
	future := time.Now().Add(time.Hour)
	user, token := seedToken(t, conn, "good-secret", []string{"facebook:publish"}, &future)

	identity, err := newTestAuthenticator(t, conn).Authenticate(context.Background(), "good-secret", "10.1.2.3", "facebook:publish")
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, user.ID, identity.UserID())
	assert.Equal(t, token.ID, identity.Token.ID)

	var stored models.APIToken
	require.NoError(t, conn.First(&stored, token.ID).Error)
	require.NotNil(t, stored.LastUsedAt)
	require.NotNil(t, stored.IP)
	assert.Equal(t, "10.1.2.3", *stored.IP)
}

type failingTouchStore struct {
	token *models.APIToken
}

func (s failingTouchStore) FindByHash(context.Context, string) (*models.APIToken, error) {
	return s.token, nil
}

func (s failingTouchStore) TouchUsage(context.Context, int64, time.Time, string) error {
	return errors.New("database is read only")
}

func TestAuthenticateIgnoresTouchFailure(t *testing.T) {
	store := failingTouchStore{token: &models.APIToken{ID: 7, User: &models.User{ID: 3}}}
	auth, err := NewAuthenticator(store, logger.Nop())
	require.NoError(t, err)

	identity, err := auth.Authenticate(context.Background(), "secret", "10.0.0.1", "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), identity.UserID())
	assert.Nil(t, identity.Token.LastUsedAt)
}

func TestNilIdentityUserID(t *testing.T) {
	var identity *Identity
	assert.Zero(t, identity.UserID())
}
