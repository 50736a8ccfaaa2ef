package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stockmesh/backend/internal/domain/integration"
	"github.com/stockmesh/backend/internal/domain/inventory"
	"github.com/stockmesh/backend/internal/infrastructure/persistence"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(persistence.Models()...))
	return db
}

func TestSeedSandbox(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	channels := []integration.ChannelCode{"sandbox", "ebay"}

	res, err := seedSandbox(ctx, db, channels, now)
	require.NoError(t, err)
	assert.Equal(t, len(sandboxCatalog), res.Items)
	assert.Equal(t, len(sandboxCatalog)*len(channels), res.Listings)
	assert.Positive(t, res.Orders)

	var orders int64
	require.NoError(t, db.Model(&inventory.Order{}).Count(&orders).Error)
	assert.Equal(t, int64(res.Orders), orders)

	var completed int64
	require.NoError(t, db.Model(&inventory.Order{}).Where("status = ?", inventory.OrderStatusCompleted).Count(&completed).Error)
	assert.Positive(t, completed)

	t.Run("second run is a no-op", func(t *testing.T) {
		again, err := seedSandbox(ctx, db, channels, now)
		require.NoError(t, err)
		assert.Equal(t, seedResult{}, again)
	})
}

func TestSeedSandbox_NoChannels(t *testing.T) {
	_, err := seedSandbox(context.Background(), setupTestDB(t), nil, time.Now())
	assert.Error(t, err)
}

func TestSchemaStatus(t *testing.T) {
	db := setupTestDB(t)

	statuses := schemaStatus(db)

	require.Len(t, statuses, len(persistence.Models()))
	for _, st := range statuses {
		assert.True(t, st.Exists, st.Table)
	}
	assert.Equal(t, "items", statuses[0].Table)
}

func TestHasConfirm(t *testing.T) {
	assert.True(t, hasConfirm([]string{"-confirm"}))
	assert.True(t, hasConfirm([]string{"x", "--confirm"}))
	assert.False(t, hasConfirm(nil))
}
