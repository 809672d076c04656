package attributes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/shopadmin-backend/pkg/db"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/dbtest"
	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	conn := dbtest.Open(t)
	svc, err := NewService(NewRepository(conn), db.NewFromGorm(conn))
	require.NoError(t, err)
	return svc
}

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "expected validation error, got %v", err)
	details, ok := pkgerrors.As(err).Details().(map[string][]string)
	require.True(t, ok)
	return details
}

func TestAttributeLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.Create(ctx, CreateInput{Name: "Color", Status: true})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = svc.Create(ctx, CreateInput{Name: "Color", Status: false})
	assert.Equal(t, []string{msgNameTaken}, fieldErrors(t, err)["name"])

	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.Values)
	assert.Empty(t, fetched.Values)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	assert.True(t, pkgerrors.IsCode(svc.Delete(ctx, created.ID), pkgerrors.CodeNotFound))
}

func TestCreateKeepsFalseStatus(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.Create(ctx, CreateInput{Name: "Hidden", Status: false})
	require.NoError(t, err)

	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, fetched.Status)
}

func TestUpdateAllowsOwnNameButNotOthers(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	size, err := svc.Create(ctx, CreateInput{Name: "Size", Status: true})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{Name: "Color", Status: true})
	require.NoError(t, err)

	same := "Size"
	off := false
	updated, err := svc.Update(ctx, size.ID, UpdateInput{Name: &same, Status: &off})
	require.NoError(t, err)
	assert.False(t, updated.Status)

	taken := "Color"
	_, err = svc.Update(ctx, size.ID, UpdateInput{Name: &taken})
	assert.Contains(t, fieldErrors(t, err), "name")

	_, err = svc.Update(ctx, 999, UpdateInput{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestAttributeValues(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.CreateValue(ctx, CreateValueInput{AttributeID: 404, Value: "Red", Status: true})
	assert.Equal(t, []string{msgAttributeInvalid}, fieldErrors(t, err)["attribute_id"])

	attr, err := svc.Create(ctx, CreateInput{Name: "Color", Status: true})
	require.NoError(t, err)

	red := "#FF0000"
	value, err := svc.CreateValue(ctx, CreateValueInput{AttributeID: attr.ID, Value: "Red", ColorCode: &red, Status: true})
	require.NoError(t, err)

	crimson := "Crimson"
	updated, err := svc.UpdateValue(ctx, value.ID, UpdateValueInput{Value: &crimson, ClearColor: true})
	require.NoError(t, err)
	assert.Equal(t, "Crimson", updated.Value)
	assert.Nil(t, updated.ColorCode)
	assert.True(t, updated.Status)

	fetched, err := svc.Get(ctx, attr.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Values, 1)

	require.NoError(t, svc.DeleteValue(ctx, value.ID))
	assert.True(t, pkgerrors.IsCode(svc.DeleteValue(ctx, value.ID), pkgerrors.CodeNotFound))
}

func TestDeleteAttributeRemovesValues(t *testing.T) {
	ctx := context.Background()
	conn := dbtest.Open(t)
	svc, err := NewService(NewRepository(conn), db.NewFromGorm(conn))
	require.NoError(t, err)

	attr, err := svc.Create(ctx, CreateInput{Name: "Material", Status: true})
	require.NoError(t, err)
	_, err = svc.CreateValue(ctx, CreateValueInput{AttributeID: attr.ID, Value: "Wool", Status: true})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, attr.ID))

	var remaining int64
	require.NoError(t, conn.Table("attribute_values").Where("attribute_id = ?", attr.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)
}
