package carts

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/shopadmin-backend/internal/catalog"
	"github.com/angelmondragon/shopadmin-backend/pkg/db"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/dbtest"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
	"github.com/angelmondragon/shopadmin-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
	"github.com/angelmondragon/shopadmin-backend/pkg/pagination"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := dbtest.Open(t)
	svc, err := NewService(NewRepository(conn), catalog.NewRepository(conn), db.NewFromGorm(conn))
	require.NoError(t, err)
	return svc, conn
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCreateCartValidatesUser(t *testing.T) {
	ctx := context.Background()
	svc, conn := newTestService(t)
	user := dbtest.User(t, conn, "Buyer")

	cart, err := svc.Create(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, enums.CartStatusActive, cart.Status)
	assert.True(t, cart.Subtotal.IsZero())

	_, err = svc.Create(ctx, user.ID+10, nil)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	bogus := "gone"
	_, err = svc.Create(ctx, user.ID, &bogus)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	detail, err := svc.Get(ctx, cart.ID)
	require.NoError(t, err)
	assert.NotNil(t, detail.Items)
	assert.Empty(t, detail.Items)
}

func TestItemMutationsRecomputeTotals(t *testing.T) {
	ctx := context.Background()
	svc, conn := newTestService(t)
	user := dbtest.User(t, conn, "Buyer")
	shop := dbtest.Shop(t, conn, "Main")
	mug := dbtest.Product(t, conn, "Mug", "5.00", nil)
	plate := dbtest.Product(t, conn, "Plate", "7.25", nil)

	cart, err := svc.Create(ctx, user.ID, nil)
	require.NoError(t, err)

	detail, err := svc.AddItem(ctx, cart.ID, AddItemInput{ProductID: mug.ID, ShopID: shop.ID, Qty: 3, UnitPrice: price("5.00")})
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, "15", detail.Items[0].LineTotal.String())
	assert.Equal(t, 3, detail.TotalItems)
	assert.Equal(t, "15", detail.Subtotal.String())

	detail, err = svc.AddItem(ctx, cart.ID, AddItemInput{ProductID: plate.ID, ShopID: shop.ID, Qty: 2, UnitPrice: price("7.25")})
	require.NoError(t, err)
	assert.Equal(t, 5, detail.TotalItems)
	assert.Equal(t, "29.5", detail.Subtotal.String())
	plateItem := detail.Items[1]

	saved := string(enums.CartItemStatusSavedForLater)
	detail, err = svc.UpdateItem(ctx, cart.ID, plateItem.ID, UpdateItemInput{Status: &saved})
	require.NoError(t, err)
	assert.Equal(t, 3, detail.TotalItems)
	assert.Equal(t, "15", detail.Subtotal.String())

	qty := 1
	detail, err = svc.UpdateItem(ctx, cart.ID, detail.Items[0].ID, UpdateItemInput{Qty: &qty})
	require.NoError(t, err)
	assert.Equal(t, "5", detail.Items[0].LineTotal.String())
	assert.Equal(t, "5", detail.Subtotal.String())

	detail, err = svc.RemoveItem(ctx, cart.ID, detail.Items[0].ID)
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, 0, detail.TotalItems)
	assert.True(t, detail.Subtotal.IsZero())

	_, err = svc.RemoveItem(ctx, cart.ID, 9999)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestAddItemValidation(t *testing.T) {
	ctx := context.Background()
	svc, conn := newTestService(t)
	user := dbtest.User(t, conn, "Buyer")
	cart, err := svc.Create(ctx, user.ID, nil)
	require.NoError(t, err)

	missingAttr := int64(77)
	_, err = svc.AddItem(ctx, cart.ID, AddItemInput{ProductID: 1, ShopID: 1, AttributeID: &missingAttr, Qty: 0, UnitPrice: price("-1")})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	details := pkgerrors.As(err).Details().(map[string][]string)
	assert.Contains(t, details, "product_id")
	assert.Contains(t, details, "shop_id")
	assert.Contains(t, details, "attribute_id")

	shop := dbtest.Shop(t, conn, "Main")
	mug := dbtest.Product(t, conn, "Mug", "5.00", nil)
	_, err = svc.AddItem(ctx, cart.ID, AddItemInput{ProductID: mug.ID, ShopID: shop.ID, Qty: 0, UnitPrice: price("-1")})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	details = pkgerrors.As(err).Details().(map[string][]string)
	assert.Equal(t, []string{msgQtyMin}, details["qty"])
	assert.Equal(t, []string{msgPriceNegative}, details["unit_price"])

	_, err = svc.AddItem(ctx, cart.ID+5, AddItemInput{ProductID: mug.ID, ShopID: shop.ID, Qty: 1})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestListUpdateDeleteCart(t *testing.T) {
	ctx := context.Background()
	svc, conn := newTestService(t)
	alice := dbtest.User(t, conn, "Alice")
	bob := dbtest.User(t, conn, "Bob")
	shop := dbtest.Shop(t, conn, "Main")
	mug := dbtest.Product(t, conn, "Mug", "5.00", nil)

	aliceCart, err := svc.Create(ctx, alice.ID, nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob.ID, nil)
	require.NoError(t, err)

	page, err := svc.List(ctx, ListFilter{UserID: &alice.ID}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)

	updated, err := svc.UpdateStatus(ctx, aliceCart.ID, "checked_out")
	require.NoError(t, err)
	assert.Equal(t, enums.CartStatusCheckedOut, updated.Status)

	checkedOut := enums.CartStatusCheckedOut
	page, err = svc.List(ctx, ListFilter{Status: &checkedOut}, pagination.Params{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	_, err = svc.UpdateStatus(ctx, aliceCart.ID, "lost")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	detail, err := svc.AddItem(ctx, aliceCart.ID, AddItemInput{ProductID: mug.ID, ShopID: shop.ID, Qty: 1, UnitPrice: price("5")})
	require.NoError(t, err)
	itemID := detail.Items[0].ID

	require.NoError(t, svc.Delete(ctx, aliceCart.ID))
	assert.True(t, pkgerrors.IsCode(svc.Delete(ctx, aliceCart.ID), pkgerrors.CodeNotFound))

	var orphan models.CartItem
	require.NoError(t, conn.First(&orphan, itemID).Error)
	assert.Nil(t, orphan.CartID)
}
