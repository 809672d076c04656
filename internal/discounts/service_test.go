package discounts

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/shopadmin-backend/pkg/db"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/dbtest"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
	"github.com/angelmondragon/shopadmin-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
	"github.com/angelmondragon/shopadmin-backend/pkg/pagination"
)

func newTestService(t *testing.T) (*service, *Repository, *models.Product) {
	t.Helper()
	conn := dbtest.Open(t)
	product := dbtest.Product(t, conn, "Lamp", "100.00", nil)
	r := NewRepository(conn)
	svc, err := NewService(r)
	require.NoError(t, err)
	return svc.(*service), r, product
}

func TestCreateDefaultsAndConflicts(t *testing.T) {
	ctx := context.Background()
	svc, _, product := newTestService(t)

	created, err := svc.Create(ctx, CreateInput{ProductID: product.ID, Type: "flat", Value: decimal.RequireFromString("10")})
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.Equal(t, enums.DiscountTypeFlat, created.Type)
	require.NotNil(t, created.Product)
	assert.Equal(t, "Lamp", created.Product.Name)

	_, err = svc.Create(ctx, CreateInput{ProductID: product.ID, Type: "percentage", Value: decimal.RequireFromString("5")})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))
	assert.Equal(t, msgAlreadyExists, pkgerrors.As(err).Message())

	kept, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.DiscountTypeFlat, kept.Type)
	assert.True(t, kept.Value.Equal(decimal.NewFromInt(10)))
	assert.True(t, kept.IsActive)

	page, err := svc.List(ctx, &product.ID, pagination.Params{})
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)
}

func TestUniqueIndexRejectsSecondDiscount(t *testing.T) {
	ctx := context.Background()
	_, r, product := newTestService(t)

	require.NoError(t, r.Create(ctx, &models.ProductDiscount{ProductID: product.ID, Type: enums.DiscountTypeFlat, Value: decimal.NewFromInt(1), IsActive: true}))
	err := r.Create(ctx, &models.ProductDiscount{ProductID: product.ID, Type: enums.DiscountTypeFlat, Value: decimal.NewFromInt(2), IsActive: true})
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err, ""))
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)

	_, err := svc.Create(ctx, CreateInput{
		ProductID: 404,
		Type:      "bogus",
		Value:     decimal.RequireFromString("-1"),
		StartAt:   &start,
		EndAt:     &end,
	})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	details := pkgerrors.As(err).Details().(map[string][]string)
	assert.Equal(t, []string{msgProductInvalid}, details["product_id"])
	assert.Equal(t, []string{msgTypeInvalid}, details["type"])
	assert.Equal(t, []string{msgValueNegative}, details["value"])
	assert.Equal(t, []string{msgEndBeforeStart}, details["end_at"])
}

func TestEqualBoundsAccepted(t *testing.T) {
	ctx := context.Background()
	svc, _, product := newTestService(t)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	_, err := svc.Create(ctx, CreateInput{ProductID: product.ID, Type: "flat", Value: decimal.Zero, StartAt: &at, EndAt: &at})
	require.NoError(t, err)
}

func TestUpdateKeepsFalseAndRevalidates(t *testing.T) {
	ctx := context.Background()
	svc, _, product := newTestService(t)
	created, err := svc.Create(ctx, CreateInput{ProductID: product.ID, Type: "flat", Value: decimal.NewFromInt(10)})
	require.NoError(t, err)

	inactive := false
	pct := "percentage"
	updated, err := svc.Update(ctx, created.ID, UpdateInput{Type: &pct, IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, enums.DiscountTypePercentage, updated.Type)
	assert.True(t, updated.Value.Equal(decimal.NewFromInt(10)))

	negative := decimal.NewFromInt(-3)
	_, err = svc.Update(ctx, created.ID, UpdateInput{Value: &negative})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.Update(ctx, created.ID+1, UpdateInput{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestUpdateClearsWindowBounds(t *testing.T) {
	ctx := context.Background()
	svc, _, product := newTestService(t)
	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	end := start.Add(30 * 24 * time.Hour)
	created, err := svc.Create(ctx, CreateInput{ProductID: product.ID, Type: "flat", Value: decimal.NewFromInt(5), StartAt: &start, EndAt: &end})
	require.NoError(t, err)
	require.NotNil(t, created.EndAt)

	updated, err := svc.Update(ctx, created.ID, UpdateInput{ClearEndAt: true})
	require.NoError(t, err)
	assert.Nil(t, updated.EndAt)
	require.NotNil(t, updated.StartAt)
	assert.True(t, updated.StartAt.Equal(start))

	updated, err = svc.Update(ctx, created.ID, UpdateInput{ClearStartAt: true})
	require.NoError(t, err)
	assert.Nil(t, updated.StartAt)
	assert.Nil(t, updated.EndAt)

	svc.now = func() time.Time { return start.Add(-365 * 24 * time.Hour) }
	price, err := svc.Price(ctx, created.ID, decimal.NewFromInt(20))
	require.NoError(t, err)
	assert.True(t, price.IsValid)
	assert.Equal(t, "15", price.EffectivePrice.String())
}

func TestListLatestFirstWithFilter(t *testing.T) {
	ctx := context.Background()
	svc, r, product := newTestService(t)
	other := dbtest.Product(t, r.DB(ctx), "Desk", "300.00", nil)

	first, err := svc.Create(ctx, CreateInput{ProductID: product.ID, Type: "flat", Value: decimal.NewFromInt(1)})
	require.NoError(t, err)
	second, err := svc.Create(ctx, CreateInput{ProductID: other.ID, Type: "flat", Value: decimal.NewFromInt(2)})
	require.NoError(t, err)

	page, err := svc.List(ctx, nil, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Equal(t, second.ID, page.Data[0].ID)
	assert.Equal(t, first.ID, page.Data[1].ID)

	page, err = svc.List(ctx, &other.ID, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Desk", page.Data[0].Product.Name)
}

func TestPriceAppliesWindow(t *testing.T) {
	ctx := context.Background()
	svc, _, product := newTestService(t)
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	end := now.Add(24 * time.Hour)

	created, err := svc.Create(ctx, CreateInput{ProductID: product.ID, Type: "percentage", Value: decimal.NewFromInt(25), EndAt: &end})
	require.NoError(t, err)

	price, err := svc.Price(ctx, created.ID, decimal.NewFromInt(80))
	require.NoError(t, err)
	assert.True(t, price.IsValid)
	assert.Equal(t, "60", price.EffectivePrice.String())

	svc.now = func() time.Time { return end.Add(time.Second) }
	price, err = svc.Price(ctx, created.ID, decimal.NewFromInt(80))
	require.NoError(t, err)
	assert.False(t, price.IsValid)
	assert.Equal(t, "80", price.EffectivePrice.String())

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.True(t, pkgerrors.IsCode(svc.Delete(ctx, created.ID), pkgerrors.CodeNotFound))
}
