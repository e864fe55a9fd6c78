package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type statement struct {
	query string
	args  []interface{}
}

// seed loads a small demo catalog for one tenant: one product that surfaces a
// pricing insight and one inventory item below its reorder point. It is safe
// to rerun; existing rows are left untouched.
func main() {
	tenant := flag.String("tenant", "demo", "tenant id to seed")
	flag.Parse()

	_ = godotenv.Load()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect db: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to ping db: %v", err)
	}

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Fatalf("failed to begin: %v", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	productID := *tenant + "-p-widget"
	itemID := *tenant + "-i-bolts"

	steps := []statement{
		{`INSERT INTO products (id, tenant_id, sku, name, price, base_cost, target_margin_low, target_margin_high)
		  VALUES ($1, $2, 'WIDGET-1', 'Widget', 10.00, 5.00, 20, 60) ON CONFLICT (id) DO NOTHING`,
			[]interface{}{productID, *tenant}},
		{`INSERT INTO inventory_items (id, tenant_id, sku, name, quantity_on_hand, reorder_point, lead_time_days, last_paid_unit_cost)
		  VALUES ($1, $2, 'BOLT-M8', 'M8 bolts', 5, 10, 7, 1.50) ON CONFLICT (id) DO NOTHING`,
			[]interface{}{itemID, *tenant}},
		{`INSERT INTO supplier_offers (id, tenant_id, item_id, supplier_name, unit_cost, pack_size, valid_from)
		  VALUES ($1, $2, $3, 'Fastener Co', 1.40, 1, $4) ON CONFLICT (id) DO NOTHING`,
			[]interface{}{itemID + "-offer", *tenant, itemID, now.AddDate(0, -1, 0)}},
	}

	// a day of history per row keeps the demo inside every supported window
	for day := 1; day <= 6; day++ {
		at := now.AddDate(0, 0, -day)
		steps = append(steps,
			statement{`INSERT INTO sales (tenant_id, product_id, quantity, sold_at) VALUES ($1, $2, 10, $3)`,
				[]interface{}{*tenant, productID, at}},
			statement{`INSERT INTO inventory_consumption (tenant_id, item_id, quantity, consumed_at) VALUES ($1, $2, 2, $3)`,
				[]interface{}{*tenant, itemID, at}},
		)
	}
	for i, competitor := range []string{"acme", "globex", "initech"} {
		steps = append(steps, statement{`INSERT INTO competitor_prices (tenant_id, product_id, competitor, price, observed_on, observed_at)
		   VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (product_id, competitor, observed_on) DO NOTHING`,
			[]interface{}{*tenant, productID, competitor, 9.0 + float64(i), now.Format("2006-01-02"), now}})
	}

	for _, s := range steps {
		if _, err := tx.ExecContext(ctx, s.query, s.args...); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}
	if err := tx.Commit(); err != nil {
		log.Fatalf("failed to commit: %v", err)
	}

	fmt.Printf("seeded tenant %s: product %s, item %s\n", *tenant, productID, itemID)
}
