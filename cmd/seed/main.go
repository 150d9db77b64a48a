package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/freshbasket/api/config"
	"github.com/freshbasket/api/internal/domain/entity"
	pginfra "github.com/freshbasket/api/internal/infrastructure/postgres"
)

// Seeds the product catalog for local development. Safe to run repeatedly;
// duplicates are simply extra rows, so wipe the table first if you care.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	products := pginfra.NewProductRepository(pool)

	samples := []entity.Product{
		{Name: "Organic Bananas", Description: "Bunch of ripe organic bananas", Price: 1.99, Category: "fruits", InStock: true},
		{Name: "Fuji Apples", Description: "Crisp and sweet, sold per kg", Price: 3.49, Category: "fruits", InStock: true},
		{Name: "Baby Spinach", Description: "Washed and ready to eat, 200g", Price: 2.79, Category: "vegetables", InStock: true},
		{Name: "Cherry Tomatoes", Description: "Sweet cherry tomatoes, 250g punnet", Price: 2.29, Category: "vegetables", InStock: true},
		{Name: "Whole Milk", Description: "Fresh whole milk, 1L", Price: 1.35, Category: "dairy", InStock: true},
		{Name: "Free-Range Eggs", Description: "Dozen large free-range eggs", Price: 4.20, Category: "dairy", InStock: true},
		{Name: "Sourdough Loaf", Description: "Stone-baked sourdough, 800g", Price: 3.95, Category: "bakery", InStock: true},
		{Name: "Atlantic Salmon", Description: "Fresh salmon fillet, per 100g", Price: 2.80, Category: "seafood", InStock: false},
	}

	for i := range samples {
		if err := products.Create(ctx, &samples[i]); err != nil {
			log.Fatalf("seed product %q: %v", samples[i].Name, err)
		}
		log.Printf("seeded %s (%s)", samples[i].Name, samples[i].ID)
	}
	log.Printf("done, %d products", len(samples))
}
