package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/Alias1177/Inventory/internal/catalog"
	"github.com/Alias1177/Inventory/internal/config"
	"github.com/Alias1177/Inventory/internal/database"
	httpclient "github.com/Alias1177/Inventory/internal/platform/http"
)

// Seeds the products table from the published catalog feed.
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	db, err := database.New(database.ConnectionParams{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	svc := catalog.New(cfg.CatalogFeedURL, httpclient.NewClient(httpclient.ClientOptions{
		Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	entries, err := svc.SeedEntries(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to fetch catalog feed")
	}

	seeded := 0
	for _, e := range entries {
		if err := db.UpsertProduct(e.Product); err != nil {
			log.Error().Err(err).Str("product_id", e.Product.ProductID).Msg("Failed to seed product")
			continue
		}
		if e.StockLevel > 0 {
			if err := db.RecordStockLevel(e.Product.ProductID, e.StockLevel); err != nil {
				log.Error().Err(err).Str("product_id", e.Product.ProductID).Msg("Failed to record stock level")
			}
		}
		seeded++
	}

	log.Info().Int("seeded", seeded).Int("total", len(entries)).Msg("Catalog seed completed")
}
