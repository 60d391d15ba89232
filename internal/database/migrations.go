package database

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		type VARCHAR(16) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		first_name VARCHAR(255) DEFAULT '',
		last_name VARCHAR(255) DEFAULT '',
		phone VARCHAR(32) DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		last_login_at TIMESTAMP WITH TIME ZONE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		deleted_at TIMESTAMP WITH TIME ZONE
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_type
		ON users(email, type) WHERE deleted_at IS NULL`,

	`CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY,
		slug VARCHAR(255) UNIQUE NOT NULL,
		name JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		slug VARCHAR(255) UNIQUE NOT NULL,
		sku VARCHAR(64) UNIQUE NOT NULL,
		name JSONB NOT NULL,
		description JSONB,
		short_description JSONB,
		base_price NUMERIC(12,2),
		type VARCHAR(16) NOT NULL DEFAULT 'SIMPLE',
		status VARCHAR(16) NOT NULL DEFAULT 'DRAFT',
		is_best_price BOOLEAN NOT NULL DEFAULT FALSE,
		is_exclusive BOOLEAN NOT NULL DEFAULT FALSE,
		is_top_selling BOOLEAN NOT NULL DEFAULT FALSE,
		is_new_arrival BOOLEAN NOT NULL DEFAULT FALSE,
		created_by UUID REFERENCES users(id) ON DELETE SET NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		deleted_at TIMESTAMP WITH TIME ZONE
	)`,

	`CREATE INDEX IF NOT EXISTS idx_products_status ON products(status) WHERE deleted_at IS NULL`,
	`CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS product_categories (
		product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		category_id UUID NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
		PRIMARY KEY (product_id, category_id)
	)`,

	`CREATE TABLE IF NOT EXISTS product_variants (
		id UUID PRIMARY KEY,
		product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		sku VARCHAR(64) UNIQUE NOT NULL,
		name JSONB,
		attributes JSONB,
		is_primary BOOLEAN NOT NULL DEFAULT FALSE,
		price NUMERIC(12,2) NOT NULL,
		list_price NUMERIC(12,2),
		stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		deleted_at TIMESTAMP WITH TIME ZONE
	)`,

	`CREATE INDEX IF NOT EXISTS idx_product_variants_product_id ON product_variants(product_id)`,

	`CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		order_number VARCHAR(32) UNIQUE NOT NULL,
		customer_id UUID NOT NULL REFERENCES users(id),
		status VARCHAR(24) NOT NULL DEFAULT 'PENDING',
		subtotal NUMERIC(12,2) NOT NULL,
		delivery_fee NUMERIC(12,2) NOT NULL DEFAULT 0,
		vat_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
		total NUMERIC(12,2) NOT NULL,
		notes TEXT DEFAULT '',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		deleted_at TIMESTAMP WITH TIME ZONE
	)`,

	`CREATE INDEX IF NOT EXISTS idx_orders_customer_id ON orders(customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status) WHERE deleted_at IS NULL`,
	`CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS order_items (
		id UUID PRIMARY KEY,
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id UUID NOT NULL REFERENCES products(id),
		variant_id UUID NOT NULL REFERENCES product_variants(id),
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		unit_price NUMERIC(12,2) NOT NULL,
		line_total NUMERIC(12,2) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		deleted_at TIMESTAMP WITH TIME ZONE
	)`,

	`CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id)`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_variant_id ON order_items(variant_id)`,
}

func RunMigrations(ctx context.Context, db *sqlx.DB) error {
	for i, migration := range migrations {
		if _, err := db.ExecContext(ctx, migration); err != nil {
			slog.Error("migration failed", "index", i, "error", err)
			return err
		}
	}
	slog.Info("migrations completed", "count", len(migrations))
	return nil
}

func RunRiverMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return err
	}

	_, err = migrator.Migrate(ctx, rivermigrate.DirectionUp, nil)
	if err != nil {
		return err
	}

	slog.Info("river migrations completed")
	return nil
}
