package users

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/shopadmin-backend/pkg/config"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/dbtest"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
	"github.com/angelmondragon/shopadmin-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
	"github.com/angelmondragon/shopadmin-backend/pkg/pagination"
	"github.com/angelmondragon/shopadmin-backend/pkg/security"
)

func strPtr(s string) *string { return &s }

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	repo := NewRepository(dbtest.Open(t))
	hasher := security.NewPasswordHasher(config.SecurityConfig{
		ArgonMemoryKB:    64,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
	svc, err := NewService(repo, hasher)
	require.NoError(t, err)
	return svc, repo
}

func TestCreateHashesPassword(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	user, err := svc.Create(ctx, CreateInput{
		Name:     " Ada Lovelace ",
		Email:    "Ada@Example.com",
		Password: strPtr("correct horse"),
		Role:     strPtr("seller"),
		Profile:  Profile{Mobile: strPtr("0123"), Zone: strPtr(" ")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", user.Name)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, enums.UserRoleSeller, user.Role)
	assert.Equal(t, "0123", *user.Mobile)
	assert.Nil(t, user.Zone)

	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Password)
	assert.True(t, strings.HasPrefix(*stored.Password, "$argon2id$"))
	assert.NotContains(t, *stored.Password, "correct horse")
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Create(ctx, CreateInput{Name: "First", Email: "taken@example.com"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateInput{
		Email:    "TAKEN@example.com",
		Password: strPtr("short"),
		Role:     strPtr("root"),
	})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	details := pkgerrors.As(err).Details().(map[string][]string)
	assert.Equal(t, []string{msgEmailTaken}, details["email"])
	assert.Equal(t, []string{msgRoleInvalid}, details["role"])
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "password")

	_, err = svc.Create(ctx, CreateInput{Name: "Bad", Email: "not-an-email"})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.Equal(t, []string{msgEmailInvalid}, pkgerrors.As(err).Details().(map[string][]string)["email"])
}

func TestUpdateAllowsOwnEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	first, err := svc.Create(ctx, CreateInput{Name: "First", Email: "first@example.com"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{Name: "Second", Email: "second@example.com"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, first.ID, UpdateInput{
		Email:    strPtr("first@example.com"),
		IsBanned: boolPtr(true),
		Profile:  Profile{Status: strPtr("active")},
	})
	require.NoError(t, err)
	assert.True(t, updated.IsBanned)
	assert.Equal(t, "active", *updated.Status)

	_, err = svc.Update(ctx, first.ID, UpdateInput{Email: strPtr("second@example.com")})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.Update(ctx, first.ID+99, UpdateInput{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func boolPtr(b bool) *bool { return &b }

func TestListFiltersAndSoftDelete(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)
	seller, err := svc.Create(ctx, CreateInput{Name: "Seller", Email: "seller@example.com", Role: strPtr("seller")})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{Name: "Buyer", Email: "buyer@example.com", Profile: Profile{Status: strPtr("active")}})
	require.NoError(t, err)

	role := enums.UserRoleSeller
	page, err := svc.List(ctx, ListFilter{Role: &role}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, seller.ID, page.Data[0].ID)

	active := "active"
	page, err = svc.List(ctx, ListFilter{Status: &active}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Buyer", page.Data[0].Name)

	require.NoError(t, svc.Delete(ctx, seller.ID))
	assert.True(t, pkgerrors.IsCode(svc.Delete(ctx, seller.ID), pkgerrors.CodeNotFound))
	_, err = svc.Get(ctx, seller.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	var trashed models.User
	require.NoError(t, repo.DB(ctx).Unscoped().Where("id = ?", seller.ID).First(&trashed).Error)
	assert.True(t, trashed.DeletedAt.Valid)

	_, err = svc.Create(ctx, CreateInput{Name: "Again", Email: "seller@example.com"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}
