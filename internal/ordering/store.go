package ordering

import (
	"context"

	"github.com/shopspring/decimal"
)

// Variant is the engine's view of a purchasable SKU. Stock is the only
// field the engine ever mutates, and only through the Store.
type Variant struct {
	ID        string
	ProductID string
	SKU       string
	Price     decimal.Decimal
	Stock     int
}

// ItemQuantity is a (variant, quantity) pair of a persisted order item.
type ItemQuantity struct {
	VariantID string
	Quantity  int
}

// Store is the transactional datastore contract the engine runs against.
// Implementations must exclude soft-deleted rows.
type Store interface {
	// VariantsByIDs fetches variants by id set in one round trip.
	VariantsByIDs(ctx context.Context, ids []string) ([]Variant, error)

	// DecrementStock atomically applies "stock = stock - qty WHERE
	// stock >= qty" and reports whether a row was updated. The
	// compare-and-decrement must be a single atomic operation, not a
	// read followed by a write.
	DecrementStock(ctx context.Context, variantID string, qty int) (bool, error)

	// IncrementStock adds qty back to a variant's stock.
	IncrementStock(ctx context.Context, variantID string, qty int) error

	// OrderItemQuantities lists the non-deleted line items of an order
	// that carry a variant reference.
	OrderItemQuantities(ctx context.Context, orderID string) ([]ItemQuantity, error)
}

// UnitOfWork runs a function against a Store bound to one atomic
// transaction: fn's effects all commit or all roll back. Passing the
// transaction explicitly keeps atomicity a visible contract instead of
// an ambient side channel.
type UnitOfWork interface {
	RunAtomic(ctx context.Context, fn func(tx Store) error) error
}
