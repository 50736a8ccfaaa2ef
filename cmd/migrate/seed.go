package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stockmesh/backend/internal/domain/integration"
	"github.com/stockmesh/backend/internal/domain/inventory"
	"github.com/stockmesh/backend/internal/infrastructure/persistence"
)

type tableStatus struct {
	Table  string
	Exists bool
}

func schemaStatus(db *gorm.DB) []tableStatus {
	migrator := db.Migrator()
	out := make([]tableStatus, 0, len(persistence.Models()))
	for _, model := range persistence.Models() {
		stmt := &gorm.Statement{DB: db}
		name := fmt.Sprintf("%T", model)
		if err := stmt.Parse(model); err == nil {
			name = stmt.Schema.Table
		}
		out = append(out, tableStatus{Table: name, Exists: migrator.HasTable(model)})
	}
	return out
}

type seedItem struct {
	SKU      string
	Title    string
	Category string
	Stock    int
	Price    string
}

var sandboxCatalog = []seedItem{
	{SKU: "DEMO-LAMP-001", Title: "Brass desk lamp", Category: "home decor", Stock: 24, Price: "39.90"},
	{SKU: "DEMO-MUG-002", Title: "Stoneware mug set", Category: "kitchen", Stock: 60, Price: "18.50"},
	{SKU: "DEMO-SCARF-003", Title: "Merino wool scarf", Category: "apparel", Stock: 15, Price: "54.00"},
}

type seedResult struct {
	Items    int
	Listings int
	Orders   int
}

// seedSandbox creates demo items with one active listing per channel and a
// month of order history. Items whose SKU already exists are skipped.
func seedSandbox(ctx context.Context, db *gorm.DB, channels []integration.ChannelCode, now time.Time) (seedResult, error) {
	var res seedResult
	if len(channels) == 0 {
		return res, errors.New("no enabled channels to list on")
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := persistence.NewGormItemRepository(tx)
		listings := persistence.NewGormListingRepository(tx)
		orders := persistence.NewGormOrderRepository(tx)

		for i, entry := range sandboxCatalog {
			var count int64
			if err := tx.Model(&inventory.Item{}).Where("sku = ?", entry.SKU).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			item, err := inventory.NewItem(entry.SKU, entry.Title, entry.Category, entry.Stock)
			if err != nil {
				return err
			}
			if err := items.Save(ctx, item); err != nil {
				return fmt.Errorf("save item %s: %w", entry.SKU, err)
			}
			res.Items++

			price := decimal.RequireFromString(entry.Price)
			perChannel := entry.Stock / len(channels)
			for c, channel := range channels {
				listing, err := inventory.NewListing(item.ID, channel, price, perChannel)
				if err != nil {
					return err
				}
				if err := listings.Save(ctx, listing); err != nil {
					return fmt.Errorf("save listing %s/%s: %w", entry.SKU, channel, err)
				}
				res.Listings++

				// Stagger volumes so channels score differently
				for n := 0; n < 2+(i+c)%4; n++ {
					order, err := inventory.NewOrder(listing.ID, price)
					if err != nil {
						return err
					}
					order.CreatedAt = now.AddDate(0, 0, -(n*7 + c))
					if n%3 != 2 {
						if err := order.Complete(order.CreatedAt.Add(48 * time.Hour)); err != nil {
							return err
						}
					}
					if err := orders.Save(ctx, order); err != nil {
						return fmt.Errorf("save order: %w", err)
					}
					res.Orders++
				}
			}
		}
		return nil
	})
	return res, err
}
