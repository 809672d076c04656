package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
)

func newTestBase(t *testing.T) Base {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.User{}))
	return NewBase(conn)
}

func TestExistsExcludesSoftDeletedRows(t *testing.T) {
	ctx := context.Background()
	base := newTestBase(t)

	user := models.User{Name: "Ana", Email: "ana@example.com"}
	require.NoError(t, base.DB(ctx).Create(&user).Error)

	ok, err := base.Exists(ctx, &models.User{}, user.ID)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, base.DB(ctx).Delete(&user).Error)
	ok, err = base.Exists(ctx, &models.User{}, user.ID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDeleteByIDReportsMissingRows(t *testing.T) {
	ctx := context.Background()
	base := newTestBase(t)

	deleted, err := base.DeleteByID(ctx, &models.User{}, 42)
	require.NoError(t, err)
	require.False(t, deleted)

	var missing models.User
	err = base.DB(ctx).First(&missing, 42).Error
	require.True(t, IsNotFound(err))
}
