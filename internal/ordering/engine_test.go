package ordering

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func seedStore() *memStore {
	s := newMemStore()
	s.addVariant(Variant{ID: "v1", ProductID: "p1", SKU: "SKU-1", Price: dec("20"), Stock: 10})
	s.addVariant(Variant{ID: "v2", ProductID: "p2", SKU: "SKU-2", Price: dec("9.99"), Stock: 6})
	return s
}

func TestPrepareLineItems(t *testing.T) {
	ctx := context.Background()
	engine := NewEngine(seedStore())

	prepared, err := engine.PrepareLineItems(ctx, []LineItemRequest{
		{ProductID: "p1", VariantID: "v1", Quantity: 2},
		{ProductID: "p2", VariantID: "v2", Quantity: 3},
		{ProductID: "p1", VariantID: "v1", Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, prepared, 3)

	// one prepared item per request line, not per aggregated variant
	assert.Equal(t, "v1", prepared[0].VariantID)
	assert.True(t, prepared[0].UnitPrice.Equal(dec("20")))
	assert.True(t, prepared[0].LineTotal.Equal(dec("40")))
	assert.True(t, prepared[1].LineTotal.Equal(dec("29.97")))
	assert.True(t, prepared[2].LineTotal.Equal(dec("20")))
}

func TestPrepareLineItemsVariantRequired(t *testing.T) {
	engine := NewEngine(seedStore())

	_, err := engine.PrepareLineItems(context.Background(), []LineItemRequest{
		{ProductID: "p1", VariantID: "", Quantity: 1},
	})
	assert.ErrorIs(t, err, ErrVariantRequired)
}

func TestPrepareLineItemsUnknownVariant(t *testing.T) {
	engine := NewEngine(seedStore())

	_, err := engine.PrepareLineItems(context.Background(), []LineItemRequest{
		{ProductID: "p1", VariantID: "missing", Quantity: 1},
	})
	assert.ErrorIs(t, err, ErrInvalidVariantSelection)
}

func TestPrepareLineItemsProductMismatch(t *testing.T) {
	engine := NewEngine(seedStore())

	// v2 belongs to p2, not p1
	_, err := engine.PrepareLineItems(context.Background(), []LineItemRequest{
		{ProductID: "p1", VariantID: "v2", Quantity: 1},
	})
	assert.ErrorIs(t, err, ErrInvalidVariantSelection)
}

func TestPrepareLineItemsAggregatesDemandPerVariant(t *testing.T) {
	engine := NewEngine(seedStore())

	// v2 has stock 6; 3 and 4 pass individually but not combined
	_, err := engine.PrepareLineItems(context.Background(), []LineItemRequest{
		{ProductID: "p2", VariantID: "v2", Quantity: 3},
		{ProductID: "p2", VariantID: "v2", Quantity: 4},
	})

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "SKU-2", stockErr.SKU)
}

func TestReserveInventory(t *testing.T) {
	ctx := context.Background()
	store := seedStore()

	items := []PreparedLineItem{
		{VariantID: "v1", Quantity: 4},
		{VariantID: "v2", Quantity: 2},
	}
	err := store.RunAtomic(ctx, func(tx Store) error {
		return ReserveInventory(ctx, tx, items)
	})
	require.NoError(t, err)
	assert.Equal(t, 6, store.stock("v1"))
	assert.Equal(t, 4, store.stock("v2"))
}

func TestReserveInventoryRollsBackOnPartialFailure(t *testing.T) {
	ctx := context.Background()
	store := seedStore()

	// first decrement succeeds, second exceeds stock; nothing may persist
	items := []PreparedLineItem{
		{VariantID: "v1", Quantity: 4},
		{VariantID: "v2", Quantity: 7},
	}
	err := store.RunAtomic(ctx, func(tx Store) error {
		return ReserveInventory(ctx, tx, items)
	})

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 10, store.stock("v1"))
	assert.Equal(t, 6, store.stock("v2"))
}

func TestReserveInventoryConcurrentLastUnit(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.addVariant(Variant{ID: "v1", ProductID: "p1", SKU: "SKU-1", Price: dec("5"), Stock: 1})

	items := []PreparedLineItem{{VariantID: "v1", Quantity: 1}}

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- store.RunAtomic(ctx, func(tx Store) error {
				return ReserveInventory(ctx, tx, items)
			})
		}()
	}
	wg.Wait()
	close(results)

	var successes, failures int
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		var stockErr *InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		failures++
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, failures)
	assert.Equal(t, 0, store.stock("v1"))
}

func TestRestoreInventory(t *testing.T) {
	ctx := context.Background()
	store := seedStore()
	store.orderItems["order-1"] = []ItemQuantity{
		{VariantID: "v1", Quantity: 3},
		{VariantID: "v2", Quantity: 2},
	}

	err := store.RunAtomic(ctx, func(tx Store) error {
		if err := ReserveInventory(ctx, tx, []PreparedLineItem{
			{VariantID: "v1", Quantity: 3},
			{VariantID: "v2", Quantity: 2},
		}); err != nil {
			return err
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, store.stock("v1"))

	err = store.RunAtomic(ctx, func(tx Store) error {
		return RestoreInventory(ctx, tx, "order-1")
	})
	require.NoError(t, err)
	assert.Equal(t, 10, store.stock("v1"))
	assert.Equal(t, 6, store.stock("v2"))
}

func TestRestoreInventoryUnknownOrderIsNoop(t *testing.T) {
	ctx := context.Background()
	store := seedStore()

	err := store.RunAtomic(ctx, func(tx Store) error {
		return RestoreInventory(ctx, tx, "no-such-order")
	})
	require.NoError(t, err)
	assert.Equal(t, 10, store.stock("v1"))
}

func TestPrepareLineItemsStorePropagatesErrors(t *testing.T) {
	engine := NewEngine(&failingStore{})

	_, err := engine.PrepareLineItems(context.Background(), []LineItemRequest{
		{ProductID: "p1", VariantID: "v1", Quantity: 1},
	})
	assert.Error(t, err)
}

type failingStore struct{}

var errStore = errors.New("store unavailable")

func (f *failingStore) VariantsByIDs(ctx context.Context, ids []string) ([]Variant, error) {
	return nil, errStore
}

func (f *failingStore) DecrementStock(ctx context.Context, variantID string, qty int) (bool, error) {
	return false, errStore
}

func (f *failingStore) IncrementStock(ctx context.Context, variantID string, qty int) error {
	return errStore
}

func (f *failingStore) OrderItemQuantities(ctx context.Context, orderID string) ([]ItemQuantity, error) {
	return nil, errStore
}
