package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/stockmesh/backend/internal/domain/analytics"
	"github.com/stockmesh/backend/internal/domain/integration"
	"github.com/stockmesh/backend/internal/domain/inventory"
	"github.com/stockmesh/backend/internal/domain/shared"
	"github.com/stockmesh/backend/internal/domain/shared/strategy"
)

func createItem(t *testing.T, db *gorm.DB, sku, category string, stock int) *inventory.Item {
	t.Helper()
	item, err := inventory.NewItem(sku, "Item "+sku, category, stock)
	require.NoError(t, err)
	require.NoError(t, NewGormItemRepository(db).Save(context.Background(), item))
	return item
}

func createListing(t *testing.T, db *gorm.DB, itemID uuid.UUID, channel integration.ChannelCode, price int64, createdAt time.Time) *inventory.Listing {
	t.Helper()
	l, err := inventory.NewListing(itemID, channel, decimal.NewFromInt(price), 1)
	require.NoError(t, err)
	l.CreatedAt = createdAt
	require.NoError(t, NewGormListingRepository(db).Save(context.Background(), l))
	return l
}

func createOrder(t *testing.T, db *gorm.DB, listingID uuid.UUID, total int64, createdAt time.Time, completedAt *time.Time) *inventory.Order {
	t.Helper()
	o, err := inventory.NewOrder(listingID, decimal.NewFromInt(total))
	require.NoError(t, err)
	o.CreatedAt = createdAt
	if completedAt != nil {
		require.NoError(t, o.Complete(*completedAt))
	}
	require.NoError(t, NewGormOrderRepository(db).Save(context.Background(), o))
	return o
}

func TestGormItemRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormItemRepository(db)
	ctx := context.Background()

	item := createItem(t, db, "SKU-1", "toys", 5)

	found, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "SKU-1", found.SKU)
	assert.Equal(t, 5, found.TotalStock)

	require.NoError(t, repo.UpdateStock(ctx, item.ID, 12))
	found, _ = repo.FindByID(ctx, item.ID)
	assert.Equal(t, 12, found.TotalStock)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.ErrorIs(t, repo.UpdateStock(ctx, uuid.New(), 1), shared.ErrNotFound)
}

func TestGormListingRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormListingRepository(db)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	item := createItem(t, db, "SKU-1", "toys", 5)
	first := createListing(t, db, item.ID, "ebay", 10, base)
	second := createListing(t, db, item.ID, "shop", 11, base.Add(time.Hour))
	other := createListing(t, db, createItem(t, db, "SKU-2", "toys", 1).ID, "ebay", 3, base)

	t.Run("active listings of an item in creation order", func(t *testing.T) {
		listings, err := repo.FindActiveByItem(ctx, item.ID)
		require.NoError(t, err)
		require.Len(t, listings, 2)
		assert.Equal(t, first.ID, listings[0].ID)
		assert.Equal(t, second.ID, listings[1].ID)
	})

	t.Run("update quantity", func(t *testing.T) {
		at := base.Add(2 * time.Hour)
		require.NoError(t, repo.UpdateQuantity(ctx, first.ID, 7, at))
		got, err := repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, 7, got.Quantity)
		require.NotNil(t, got.LastStockUpdate)
		assert.True(t, at.Equal(*got.LastStockUpdate))
	})

	t.Run("mark ended removes it from the active set", func(t *testing.T) {
		require.NoError(t, repo.MarkEnded(ctx, second.ID, base.Add(3*time.Hour)))
		got, _ := repo.FindByID(ctx, second.ID)
		assert.Equal(t, inventory.ListingStatusEnded, got.Status)
		assert.Zero(t, got.Quantity)

		active, err := repo.FindAllActive(ctx)
		require.NoError(t, err)
		ids := []uuid.UUID{}
		for _, l := range active {
			ids = append(ids, l.ID)
		}
		assert.ElementsMatch(t, []uuid.UUID{first.ID, other.ID}, ids)
	})

	t.Run("platform data keeps existing keys", func(t *testing.T) {
		first.PlatformData["seller_note"] = "keep"
		require.NoError(t, repo.Save(ctx, first))

		at := base.Add(4 * time.Hour)
		require.NoError(t, repo.UpdatePlatformData(ctx, first.ID, integration.ListingReceipt{ExternalID: "ext-1", URL: "https://x/ext-1"}, at))

		got, _ := repo.FindByID(ctx, first.ID)
		assert.Equal(t, "ext-1", got.ExternalID)
		assert.Equal(t, "https://x/ext-1", got.URL)
		assert.Equal(t, "keep", got.PlatformData["seller_note"])
		assert.Equal(t, "ext-1", got.PlatformData[inventory.PlatformDataExternalID])
		assert.Equal(t, at.Format(time.RFC3339), got.PlatformData[inventory.PlatformDataSyncTimestamp])
	})

	t.Run("missing listing", func(t *testing.T) {
		assert.ErrorIs(t, repo.UpdateQuantity(ctx, uuid.New(), 1, base), shared.ErrNotFound)
		assert.ErrorIs(t, repo.MarkEnded(ctx, uuid.New(), base), shared.ErrNotFound)
		assert.ErrorIs(t, repo.UpdatePlatformData(ctx, uuid.New(), integration.ListingReceipt{}, base), shared.ErrNotFound)
	})
}

func TestGormHistoryRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormHistoryRepository(db)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	done := base.Add(48 * time.Hour)

	toy := createItem(t, db, "SKU-1", "toys", 5)
	ebay := createListing(t, db, toy.ID, "ebay", 100, base)
	shop := createListing(t, db, toy.ID, "shop", 120, base.Add(time.Hour))
	createOrder(t, db, ebay.ID, 100, base.Add(time.Hour), &done)
	createOrder(t, db, ebay.ID, 90, base.Add(2*time.Hour), nil)
	createItem(t, db, "SKU-2", "books", 1)

	t.Run("listings for item carry their orders", func(t *testing.T) {
		got, err := repo.ListingsForItem(ctx, toy.ID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, ebay.ID, got[0].ListingID)
		require.Len(t, got[0].Orders, 2)
		assert.Equal(t, analytics.OrderStatusCompleted, got[0].Orders[0].Status)
		assert.Empty(t, got[1].Orders)
		assert.Equal(t, shop.ID, got[1].ListingID)
	})

	t.Run("category history filters orders by time", func(t *testing.T) {
		got, err := repo.ItemsByCategorySince(ctx, "toys", base.Add(90*time.Minute))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, toy.ID, got[0].ItemID)

		var orders int
		for _, l := range got[0].Listings {
			orders += len(l.Orders)
		}
		// the completed order was created before since but completed after it
		assert.Equal(t, 2, orders)

		none, err := repo.ItemsByCategorySince(ctx, "garden", base)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("channel history", func(t *testing.T) {
		got, err := repo.ChannelHistory(ctx, []integration.ChannelCode{"ebay", "shop"})
		require.NoError(t, err)
		require.Len(t, got["ebay"], 2)
		assert.NotContains(t, got, integration.ChannelCode("shop"))

		var completed, pending int
		for _, o := range got["ebay"] {
			if hours, ok := o.HoursToSell(); ok {
				completed++
				assert.InDelta(t, 48.0, hours, 1e-6)
			}
			if o.Status == strategy.OutcomeStatus(inventory.OrderStatusPending) {
				pending++
			}
		}
		assert.Equal(t, 1, completed)
		assert.Equal(t, 1, pending)
	})

	t.Run("competitor samples grouped by channel", func(t *testing.T) {
		var samples []analytics.CompetitorSample
		for _, s := range []struct {
			ch    integration.ChannelCode
			price float64
		}{{"ebay", 10}, {"ebay", 12}, {"shop", 11}} {
			sample, err := analytics.NewCompetitorSample(toy.ID, s.ch, s.price, base)
			require.NoError(t, err)
			samples = append(samples, *sample)
		}
		require.NoError(t, NewGormCompetitorSampleRepository(db).SaveSamples(ctx, samples))

		got, err := repo.CompetitorSamplesForItem(ctx, toy.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []float64{10, 12}, got["ebay"])
		assert.Equal(t, []float64{11}, got["shop"])
	})
}

func TestGormListingAnalyticsRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormListingAnalyticsRepository(db)
	ctx := context.Background()
	now := time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)
	listing := uuid.New()

	repo.now = func() time.Time { return now.Add(-48 * time.Hour) }
	require.NoError(t, repo.RecordAnalytics(ctx, listing, analytics.ListingMetrics{PriceAccuracy: 0.1}))
	repo.now = func() time.Time { return now }
	require.NoError(t, repo.RecordAnalytics(ctx, listing, analytics.ListingMetrics{PriceAccuracy: 0.9}))

	recent, err := repo.RecordsSince(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, 0.9, recent[0].PriceAccuracy)

	latest, err := repo.LatestForListing(ctx, listing)
	require.NoError(t, err)
	assert.Equal(t, 0.9, latest.PriceAccuracy)

	_, err = repo.LatestForListing(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	t.Run("snapshot is replaced for the same day", func(t *testing.T) {
		first := analytics.Summarize(now, recent)
		require.NoError(t, repo.SaveSnapshot(ctx, &first))

		second := analytics.Summarize(now, nil)
		second.ArchiveKey = "snapshots/2024-06-02.json"
		require.NoError(t, repo.SaveSnapshot(ctx, &second))

		var count int64
		require.NoError(t, db.Model(&analytics.AnalyticsSnapshot{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)

		snap, err := repo.LatestSnapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, snap.RecordCount)
		assert.Equal(t, "snapshots/2024-06-02.json", snap.ArchiveKey)
	})
}

func TestGormListingRepository_FindActiveByItemSQL(t *testing.T) {
	database, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()
	repo := NewGormListingRepository(database.DB)

	itemID := uuid.New()
	listingID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "listings" WHERE item_id = \$1 AND status = \$2 ORDER BY created_at ASC, id ASC`).
		WithArgs(itemID, inventory.ListingStatusActive).
		WillReturnRows(sqlmock.NewRows([]string{"id", "item_id", "channel", "status", "price", "quantity"}).
			AddRow(listingID, itemID, "ebay", "active", "9.99", 4))

	listings, err := repo.FindActiveByItem(context.Background(), itemID)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, listingID, listings[0].ID)
	assert.Equal(t, integration.ChannelCode("ebay"), listings[0].Channel)
	assert.Equal(t, 4, listings[0].Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}
