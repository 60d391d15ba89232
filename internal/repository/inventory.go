package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"storefront-api/internal/ordering"
)

// inventoryStore implements the ordering engine's datastore contract over
// any sqlx execution surface, so the same queries serve both plain reads
// on the pool and writes inside a transaction.
type inventoryStore struct {
	q sqlx.ExtContext
}

type variantRow struct {
	ID        string          `db:"id"`
	ProductID string          `db:"product_id"`
	SKU       string          `db:"sku"`
	Price     decimal.Decimal `db:"price"`
	Stock     int             `db:"stock"`
}

func (s inventoryStore) VariantsByIDs(ctx context.Context, ids []string) ([]ordering.Variant, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, product_id, sku, price, stock
		FROM product_variants
		WHERE id IN (?) AND deleted_at IS NULL`, ids)
	if err != nil {
		return nil, err
	}
	query = s.q.Rebind(query)

	var rows []variantRow
	if err := sqlx.SelectContext(ctx, s.q, &rows, query, args...); err != nil {
		return nil, err
	}

	variants := make([]ordering.Variant, len(rows))
	for i, row := range rows {
		variants[i] = ordering.Variant{
			ID:        row.ID,
			ProductID: row.ProductID,
			SKU:       row.SKU,
			Price:     row.Price,
			Stock:     row.Stock,
		}
	}
	return variants, nil
}

func (s inventoryStore) DecrementStock(ctx context.Context, variantID string, qty int) (bool, error) {
	// The stock >= qty predicate makes the compare-and-decrement a single
	// atomic statement; no row means another order got there first.
	res, err := s.q.ExecContext(ctx, `
		UPDATE product_variants
		SET stock = stock - $2, updated_at = NOW()
		WHERE id = $1 AND stock >= $2 AND deleted_at IS NULL`,
		variantID, qty)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s inventoryStore) IncrementStock(ctx context.Context, variantID string, qty int) error {
	_, err := s.q.ExecContext(ctx, `
		UPDATE product_variants
		SET stock = stock + $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`,
		variantID, qty)
	return err
}

func (s inventoryStore) OrderItemQuantities(ctx context.Context, orderID string) ([]ordering.ItemQuantity, error) {
	var rows []struct {
		VariantID string `db:"variant_id"`
		Quantity  int    `db:"quantity"`
	}
	err := sqlx.SelectContext(ctx, s.q, &rows, `
		SELECT variant_id, quantity
		FROM order_items
		WHERE order_id = $1 AND deleted_at IS NULL`, orderID)
	if err != nil {
		return nil, err
	}

	items := make([]ordering.ItemQuantity, len(rows))
	for i, row := range rows {
		items[i] = ordering.ItemQuantity{VariantID: row.VariantID, Quantity: row.Quantity}
	}
	return items, nil
}
