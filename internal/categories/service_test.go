package categories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/shopadmin-backend/pkg/db"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/dbtest"
	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
	"github.com/angelmondragon/shopadmin-backend/pkg/pagination"
)

func strPtr(s string) *string { return &s }
func idPtr(id int64) *int64 { return &id }

func newTestService(t *testing.T) Service {
	t.Helper()
	conn := dbtest.Open(t)
	svc, err := NewService(NewRepository(conn), db.NewFromGorm(conn))
	require.NoError(t, err)
	return svc
}

func TestCreateDerivesLevel(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	root, err := svc.Create(ctx, Input{Name: strPtr("Home"), Featured: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, 0, root.Level)
	assert.Equal(t, 1, root.Featured)
	assert.Empty(t, root.Children)
	assert.NotNil(t, root.Children)

	child, err := svc.Create(ctx, Input{Name: strPtr("Kitchen"), ParentID: idPtr(root.ID)})
	require.NoError(t, err)
	assert.Equal(t, 1, child.Level)

	grandchild, err := svc.Create(ctx, Input{Name: strPtr("Mugs"), ParentID: idPtr(child.ID)})
	require.NoError(t, err)
	assert.Equal(t, 2, grandchild.Level)

	detail, err := svc.Get(ctx, root.ID)
	require.NoError(t, err)
	require.Len(t, detail.Children, 1)
	assert.Equal(t, child.ID, detail.Children[0].ID)
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	_, err := svc.Create(ctx, Input{Name: strPtr("Home"), Slug: strPtr("home")})
	require.NoError(t, err)

	_, err = svc.Create(ctx, Input{
		Name:     strPtr("a name that is far too long to fit in fifty characters"),
		ParentID: idPtr(404),
		Slug:     strPtr("home"),
	})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	details := pkgerrors.As(err).Details().(map[string][]string)
	assert.Equal(t, []string{msgParentInvalid}, details["parent_id"])
	assert.Equal(t, []string{msgSlugTaken}, details["slug"])
	assert.Contains(t, details, "name")

	_, err = svc.Create(ctx, Input{})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestUpdateMovesSubtree(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	a, err := svc.Create(ctx, Input{Name: strPtr("A")})
	require.NoError(t, err)
	b, err := svc.Create(ctx, Input{Name: strPtr("B")})
	require.NoError(t, err)
	c, err := svc.Create(ctx, Input{Name: strPtr("C"), ParentID: idPtr(b.ID)})
	require.NoError(t, err)

	moved, err := svc.Update(ctx, b.ID, Input{ParentID: idPtr(a.ID)})
	require.NoError(t, err)
	assert.Equal(t, 1, moved.Level)

	leaf, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, leaf.Level)

	_, err = svc.Update(ctx, a.ID, Input{ParentID: idPtr(c.ID)})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.Equal(t, []string{msgParentCycle}, pkgerrors.As(err).Details().(map[string][]string)["parent_id"])

	_, err = svc.Update(ctx, a.ID, Input{ParentID: idPtr(a.ID)})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestDeleteReparentsChildren(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	root, err := svc.Create(ctx, Input{Name: strPtr("Root")})
	require.NoError(t, err)
	child, err := svc.Create(ctx, Input{Name: strPtr("Child"), ParentID: idPtr(root.ID)})
	require.NoError(t, err)
	leaf, err := svc.Create(ctx, Input{Name: strPtr("Leaf"), ParentID: idPtr(child.ID)})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, root.ID))
	assert.True(t, pkgerrors.IsCode(svc.Delete(ctx, root.ID), pkgerrors.CodeNotFound))

	promoted, err := svc.Get(ctx, child.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), promoted.ParentID)
	assert.Equal(t, 0, promoted.Level)

	below, err := svc.Get(ctx, leaf.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, below.Level)

	var level int64
	page, err := svc.List(ctx, ListFilter{Level: &level}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, child.ID, page.Data[0].ID)

	page, err = svc.List(ctx, ListFilter{ParentID: idPtr(child.ID)}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, leaf.ID, page.Data[0].ID)
}

func boolPtr(b bool) *bool { return &b }
