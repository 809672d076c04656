// Package dbtest opens throwaway sqlite databases carrying the full schema.
package dbtest

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
	"github.com/angelmondragon/shopadmin-backend/pkg/enums"
)

// Open returns an in-memory database private to t with every model migrated and
// the order status lookup seeded.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conn, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(models.All()...))

	statuses := []models.OrderStatus{
		{Code: enums.OrderStatusPending, Name: "Pending"},
		{Code: enums.OrderStatusConfirmed, Name: "Confirmed"},
		{Code: enums.OrderStatusProcessing, Name: "Processing"},
		{Code: enums.OrderStatusShipped, Name: "Shipped"},
		{Code: enums.OrderStatusDelivered, Name: "Delivered"},
		{Code: enums.OrderStatusCancelled, Name: "Cancelled"},
	}
	require.NoError(t, conn.Create(&statuses).Error)

	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}

// User inserts a customer with a unique email derived from name.
func User(t testing.TB, conn *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com", Role: enums.UserRoleCustomer}
	require.NoError(t, conn.Create(user).Error)
	return user
}

// Product inserts a catalog product priced at price.
func Product(t testing.TB, conn *gorm.DB, name, price string, thumbnail *string, photos ...string) *models.Product {
	t.Helper()
	product := &models.Product{Name: name, ThumbnailURL: thumbnail, Photos: photos, Price: decimal.RequireFromString(price)}
	require.NoError(t, conn.Create(product).Error)
	return product
}

// Shop inserts a seller.
func Shop(t testing.TB, conn *gorm.DB, name string) *models.Shop {
	t.Helper()
	shop := &models.Shop{Name: name}
	require.NoError(t, conn.Create(shop).Error)
	return shop
}
