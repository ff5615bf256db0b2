// Package dbtest provides an in-memory database with the pizza store schema for tests.
package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"pizza-store-cli/database"
	"pizza-store-cli/models"
)

// New returns a gateway over a fresh in-memory SQLite database. The
// production schema is pre-provisioned, so only tests migrate.
func New(t testing.TB) *database.Gateway {
	t.Helper()
	ctx := context.Background()

	gw, err := database.Open(ctx, sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { gw.Close() })

	require.NoError(t, gw.DB(ctx).AutoMigrate(models.All()...))
	return gw
}

// Seed inserts records directly, bypassing the application.
func Seed(t testing.TB, gw *database.Gateway, records ...any) {
	t.Helper()
	for _, r := range records {
		require.NoError(t, gw.DB(context.Background()).Create(r).Error)
	}
}

// Order builds a FoodOrder with sensible defaults.
func Order(id int, login string, status models.OrderStatus) *models.FoodOrder {
	return &models.FoodOrder{
		OrderID:        id,
		Login:          login,
		StoreID:        1,
		TotalPrice:     12.5,
		OrderTimestamp: time.Date(2024, 3, 1, 18, 30, 0, 0, time.UTC),
		OrderStatus:    status,
	}
}
