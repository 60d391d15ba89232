package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"storefront-api/internal/models"
	"storefront-api/internal/ordering"
)

type OrderRepository struct {
	db *sqlx.DB
	inventoryStore
}

// OrderTx is the write surface available inside one order transaction.
// It carries the engine's Store contract alongside the order writes, so
// inventory reservation and the order insert commit or roll back together.
type OrderTx struct {
	tx *sqlx.Tx
	inventoryStore
}

var (
	_ ordering.Store      = (*OrderRepository)(nil)
	_ ordering.Store      = (*OrderTx)(nil)
	_ ordering.UnitOfWork = (*OrderRepository)(nil)
)

func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db, inventoryStore: inventoryStore{q: db}}
}

// InTransaction runs fn inside one database transaction, rolling back if
// fn returns an error.
func (r *OrderRepository) InTransaction(ctx context.Context, fn func(tx *OrderTx) error) error {
	txx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(&OrderTx{tx: txx, inventoryStore: inventoryStore{q: txx}}); err != nil {
		_ = txx.Rollback()
		return err
	}
	return txx.Commit()
}

func (r *OrderRepository) RunAtomic(ctx context.Context, fn func(tx ordering.Store) error) error {
	return r.InTransaction(ctx, func(tx *OrderTx) error {
		return fn(tx)
	})
}

func (t *OrderTx) InsertOrder(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (id, order_number, customer_id, status, subtotal, delivery_fee, vat_amount, total, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	return t.tx.QueryRowContext(ctx, query,
		order.ID, order.OrderNumber, order.CustomerID, order.Status,
		order.Subtotal, order.DeliveryFee, order.VATAmount, order.Total, order.Notes,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
}

func (t *OrderTx) InsertItems(ctx context.Context, items []*models.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, variant_id, quantity, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	for _, item := range items {
		err := t.tx.QueryRowContext(ctx, query,
			item.ID, item.OrderID, item.ProductID, item.VariantID,
			item.Quantity, item.UnitPrice, item.LineTotal,
		).Scan(&item.CreatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}

func (t *OrderTx) UpdateStatus(ctx context.Context, orderID string, status ordering.Status) error {
	_, err := t.tx.ExecContext(ctx, `
		UPDATE orders SET status = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`, orderID, status)
	return err
}

func (t *OrderTx) AppendNotes(ctx context.Context, orderID, note string) error {
	_, err := t.tx.ExecContext(ctx, `
		UPDATE orders
		SET notes = CASE WHEN notes = '' THEN $2 ELSE notes || E'\n' || $2 END,
			updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`, orderID, note)
	return err
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.db.GetContext(ctx, &order, `
		SELECT id, order_number, customer_id, status, subtotal, delivery_fee, vat_amount, total, notes, created_at, updated_at
		FROM orders
		WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return nil, err
	}

	items, err := r.itemsByOrderID(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

func (r *OrderRepository) itemsByOrderID(ctx context.Context, orderID string) ([]*models.OrderItem, error) {
	var items []*models.OrderItem
	err := r.db.SelectContext(ctx, &items, `
		SELECT id, order_id, product_id, variant_id, quantity, unit_price, line_total, created_at
		FROM order_items
		WHERE order_id = $1 AND deleted_at IS NULL
		ORDER BY created_at`, orderID)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// OrderFilter narrows order listings. Zero values mean "no filter":
// customers list with their own id pinned, admins may filter by either.
type OrderFilter struct {
	CustomerID string
	Status     ordering.Status
}

func (f OrderFilter) where() (string, []any) {
	clauses := []string{"deleted_at IS NULL"}
	var args []any

	if f.CustomerID != "" {
		args = append(args, f.CustomerID)
		clauses = append(clauses, fmt.Sprintf("customer_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	return strings.Join(clauses, " AND "), args
}

func (r *OrderRepository) List(ctx context.Context, filter OrderFilter, limit, offset int) ([]*models.Order, error) {
	where, args := filter.where()
	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT id, order_number, customer_id, status, subtotal, delivery_fee, vat_amount, total, notes, created_at, updated_at
		FROM orders
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	var orders []*models.Order
	if err := r.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) Count(ctx context.Context, filter OrderFilter) (int, error) {
	where, args := filter.where()
	query := fmt.Sprintf(`SELECT COUNT(*) FROM orders WHERE %s`, where)

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, err
	}
	return count, nil
}
