package apitokens

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
	"github.com/angelmondragon/shopadmin-backend/pkg/pagination"
	"github.com/angelmondragon/shopadmin-backend/pkg/security"
)

func TestIssueStoresHashAndReturnsPlaintextOnce(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	user := &models.User{Name: "Ana", Email: "ana@example.com"}
	require.NoError(t, conn.Create(user).Error)

	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)

	issued, err := svc.Issue(ctx, user.ID, IssueInput{Name: " deploy ", Scopes: []string{"facebook:publish", "facebook:publish", ""}})
	require.NoError(t, err)
	assert.Len(t, issued.PlainTextToken, 80)
	assert.Equal(t, "deploy", issued.Name)
	assert.Equal(t, []string{"facebook:publish"}, issued.Scopes)

	var stored models.APIToken
	require.NoError(t, conn.First(&stored, issued.ID).Error)
	assert.Equal(t, security.HashToken(issued.PlainTextToken), stored.TokenHash)

	page, err := svc.List(ctx, user.ID, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, int64(1), page.Total)
}

func TestIssueRejectsUnknownUserAndPastExpiry(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)

	_, err = svc.Issue(ctx, 99, IssueInput{Name: "x"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	user := &models.User{Name: "Ana", Email: "ana@example.com"}
	require.NoError(t, conn.Create(user).Error)
	past := time.Now().Add(-time.Hour)
	_, err = svc.Issue(ctx, user.ID, IssueInput{Name: "x", ExpiresAt: &past})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	details := pkgerrors.As(err).Details().(map[string][]string)
	assert.Contains(t, details, "expires_at")
}

func TestRevoke(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	_, token := seedToken(t, conn, "revoke-me", nil, nil)

	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, token.ID))
	err = svc.Revoke(ctx, token.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}
