// Seed loads a demo catalog into an empty products table.
package main

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/vasiliy-maslov/ecommerce-shop/internal/catalog"
	"github.com/vasiliy-maslov/ecommerce-shop/internal/config"
	"github.com/vasiliy-maslov/ecommerce-shop/internal/db"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	ctx := context.Background()

	pg, err := db.New(ctx, cfg.Postgres)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pg.Close()

	if err := pg.ApplyMigrations(cfg.Postgres); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply migrations")
	}

	svc := catalog.NewService(catalog.NewRepository(pg.Pool))

	products := []catalog.Product{
		{Name: "Wireless Headphones", Description: "High-quality wireless headphones with noise cancellation", Price: decimal.RequireFromString("99.99"), Stock: 50, Category: "Electronics"},
		{Name: "Smart Watch", Description: "Fitness tracker with heart rate monitor and GPS", Price: decimal.RequireFromString("199.99"), Stock: 30, Category: "Electronics"},
		{Name: "Laptop Stand", Description: "Ergonomic aluminum laptop stand", Price: decimal.RequireFromString("49.99"), Stock: 100, Category: "Accessories"},
		{Name: "USB-C Cable", Description: "Fast charging USB-C cable 6ft", Price: decimal.RequireFromString("12.99"), Stock: 200, Category: "Accessories"},
		{Name: "Mechanical Keyboard", Description: "RGB mechanical gaming keyboard with blue switches", Price: decimal.RequireFromString("129.99"), Stock: 45, Category: "Electronics"},
		{Name: "Wireless Mouse", Description: "Ergonomic wireless mouse with precision tracking", Price: decimal.RequireFromString("39.99"), Stock: 75, Category: "Electronics"},
		{Name: "Phone Case", Description: "Protective silicone phone case", Price: decimal.RequireFromString("19.99"), Stock: 150, Category: "Accessories"},
		{Name: "Portable Charger", Description: "20000mAh portable power bank", Price: decimal.RequireFromString("34.99"), Stock: 60, Category: "Electronics"},
	}

	for i := range products {
		if err := svc.CreateProduct(ctx, &products[i]); err != nil {
			log.Fatal().Err(err).Str("name", products[i].Name).Msg("Failed to seed product")
		}
	}

	log.Info().Int("count", len(products)).Msg("Catalog seeded")
}
