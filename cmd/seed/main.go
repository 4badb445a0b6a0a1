package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/electroshop/internal/app"
	"github.com/Skotchmaster/electroshop/internal/transport"
	"github.com/Skotchmaster/electroshop/pkg/config"
	"github.com/Skotchmaster/electroshop/pkg/logging"
)

func main() {
	reset := flag.Bool("reset", false, "delete every product before seeding")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()
	cfg.MustValid()

	logger := logging.New(cfg.LogLevel).With("service", "seed")
	ctx, cancel := context.WithTimeout(logging.IntoContext(context.Background(), logger), 2*time.Minute)
	defer cancel()

	a, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Error("init_failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("close_error", "error", err)
		}
	}()

	if *reset {
		n, err := a.Repo.DeleteAllProducts(ctx)
		if err != nil {
			logger.Error("reset_failed", "error", err)
			return
		}
		logger.Info("products_deleted", "count", n)
	}

	created := 0
	for _, p := range catalog() {
		if _, err := a.Catalog.CreateProduct(ctx, p); err != nil {
			logger.Error("seed_product_failed", "name", p.Name, "error", err)
			continue
		}
		created++
	}
	logger.Info("seed_done", "created", created)
}

func product(name, brand, category, price, description string) transport.CreateProductRequest {
	return transport.CreateProductRequest{
		Name:        name,
		Description: description,
		Price:       decimal.RequireFromString(price),
		Brand:       brand,
		Category:    category,
		Image:       "/images/products/placeholder.png",
	}
}

func catalog() []transport.CreateProductRequest {
	return []transport.CreateProductRequest{
		product("iPhone 15", "Apple", "Electronics", "799.00", "6.1-inch smartphone with A16 Bionic chip"),
		product("MacBook Air M3", "Apple", "Electronics", "1099.00", "13-inch laptop, 8-core CPU, 16GB memory"),
		product("AirPods Pro", "Apple", "Accessories", "249.00", "Wireless earbuds with active noise cancellation"),
		product("MagSafe Charger", "Apple", "Accessories", "39.00", "Magnetic wireless charger for iPhone"),
		product("Galaxy S24", "Samsung", "Electronics", "899.99", "6.2-inch smartphone with 120Hz display"),
		product("Neo QLED 55\"", "Samsung", "Electronics", "1299.99", "55-inch 4K smart TV with quantum matrix backlight"),
		product("Bespoke Refrigerator", "Samsung", "Appliances", "2199.00", "French door refrigerator with customizable panels"),
		product("Galaxy Buds2", "Samsung", "Accessories", "99.99", "Compact wireless earbuds"),
		product("WH-1000XM5", "Sony", "Accessories", "399.99", "Over-ear noise cancelling headphones"),
		product("PlayStation 5", "Sony", "Electronics", "499.99", "Game console with ultra-high speed SSD"),
		product("Bravia XR 65\"", "Sony", "Electronics", "1799.99", "65-inch OLED TV with cognitive processor"),
		product("OLED evo C3 55\"", "LG", "Electronics", "1499.99", "55-inch OLED TV with self-lit pixels"),
		product("InstaView Refrigerator", "LG", "Appliances", "2499.00", "Side-by-side refrigerator with knock-to-see panel"),
		product("WashTower", "LG", "Appliances", "2099.00", "Stacked washer and dryer unit"),
		product("CordZero Vacuum", "LG", "Appliances", "599.99", "Cordless stick vacuum with dual batteries"),
		product("Inverter Microwave", "Panasonic", "Appliances", "189.99", "1.3 cu ft countertop microwave"),
		product("Lumix S5 II", "Panasonic", "Electronics", "1999.99", "Full-frame mirrorless camera"),
		product("Hair Dryer EH-NA67", "Panasonic", "Appliances", "149.99", "Nanoe hair dryer with quick-dry nozzle"),
		product("eneloop Pro AA 4-pack", "Panasonic", "Accessories", "24.99", "Rechargeable NiMH batteries"),
	}
}
