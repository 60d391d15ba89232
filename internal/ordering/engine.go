package ordering

import (
	"context"

	"github.com/shopspring/decimal"
)

// LineItemRequest is a caller-supplied, not yet priced order line.
type LineItemRequest struct {
	ProductID string
	VariantID string
	Quantity  int
}

// PreparedLineItem is a priced order line. Immutable once computed within
// an order-creation attempt; the unit price is the variant's price at
// preparation time, not at commit time.
type PreparedLineItem struct {
	ProductID string          `json:"product_id"`
	VariantID string          `json:"variant_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Engine prices order lines and reserves or restores variant stock.
// It owns no state and no concurrency primitives: correctness under
// concurrent orders rests entirely on the Store's atomic conditional
// decrement.
type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// PrepareLineItems validates the requested lines against the catalog and
// prices them. Availability is checked against the aggregated demand per
// variant, not per line, so two lines for the same variant cannot pass
// individually and fail jointly. The stock check here is advisory; the
// conditional decrement in ReserveInventory is the authority.
func (e *Engine) PrepareLineItems(ctx context.Context, requests []LineItemRequest) ([]PreparedLineItem, error) {
	for _, req := range requests {
		if req.VariantID == "" {
			return nil, ErrVariantRequired
		}
	}

	requestedByVariant := make(map[string]int)
	var variantIDs []string
	for _, req := range requests {
		if _, seen := requestedByVariant[req.VariantID]; !seen {
			variantIDs = append(variantIDs, req.VariantID)
		}
		requestedByVariant[req.VariantID] += req.Quantity
	}

	variants, err := e.store.VariantsByIDs(ctx, variantIDs)
	if err != nil {
		return nil, err
	}
	if len(variants) != len(variantIDs) {
		return nil, ErrInvalidVariantSelection
	}

	byID := make(map[string]Variant, len(variants))
	for _, v := range variants {
		byID[v.ID] = v
	}

	for _, v := range variants {
		for _, req := range requests {
			if req.VariantID == v.ID && req.ProductID != v.ProductID {
				return nil, ErrInvalidVariantSelection
			}
		}
		if requestedByVariant[v.ID] > v.Stock {
			return nil, &InsufficientStockError{SKU: v.SKU, VariantID: v.ID}
		}
	}

	prepared := make([]PreparedLineItem, 0, len(requests))
	for _, req := range requests {
		v := byID[req.VariantID]
		unitPrice := Round2(v.Price)
		prepared = append(prepared, PreparedLineItem{
			ProductID: req.ProductID,
			VariantID: req.VariantID,
			Quantity:  req.Quantity,
			UnitPrice: unitPrice,
			LineTotal: Round2(unitPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))),
		})
	}
	return prepared, nil
}

// ReserveInventory claims stock for every prepared item via conditional
// decrements. It must run inside the transaction that creates the order:
// if any decrement misses (a concurrent order drained the variant between
// the advisory check and here), the returned error aborts the whole
// transaction and no partial decrement survives.
func ReserveInventory(ctx context.Context, tx Store, items []PreparedLineItem) error {
	for _, item := range items {
		ok, err := tx.DecrementStock(ctx, item.VariantID, item.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			return &InsufficientStockError{VariantID: item.VariantID}
		}
	}
	return nil
}

// RestoreInventory returns an order's reserved stock to its variants.
// It must run inside the transaction that moves the order to CANCELLED;
// the status-machine guard is what prevents it from running twice for
// the same order.
func RestoreInventory(ctx context.Context, tx Store, orderID string) error {
	items, err := tx.OrderItemQuantities(ctx, orderID)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := tx.IncrementStock(ctx, item.VariantID, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}
