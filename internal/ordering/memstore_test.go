package ordering

import (
	"context"
	"sync"
)

// memStore is an in-memory Store + UnitOfWork used by the engine tests.
// RunAtomic serializes transactions under one mutex and rolls variant
// state back when fn fails, mirroring the all-or-nothing contract of the
// SQL implementation.
type memStore struct {
	mu         sync.Mutex
	variants   map[string]*Variant
	orderItems map[string][]ItemQuantity
}

func newMemStore() *memStore {
	return &memStore{
		variants:   make(map[string]*Variant),
		orderItems: make(map[string][]ItemQuantity),
	}
}

func (s *memStore) addVariant(v Variant) {
	s.variants[v.ID] = &v
}

func (s *memStore) stock(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.variants[id].Stock
}

func (s *memStore) VariantsByIDs(ctx context.Context, ids []string) ([]Variant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.variantsByIDsLocked(ids)
}

func (s *memStore) DecrementStock(ctx context.Context, variantID string, qty int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.decrementLocked(variantID, qty)
}

func (s *memStore) IncrementStock(ctx context.Context, variantID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.incrementLocked(variantID, qty)
}

func (s *memStore) OrderItemQuantities(ctx context.Context, orderID string) ([]ItemQuantity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orderItems[orderID], nil
}

func (s *memStore) RunAtomic(ctx context.Context, fn func(tx Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[string]*Variant, len(s.variants))
	for id, v := range s.variants {
		copied := *v
		snapshot[id] = &copied
	}

	if err := fn(&memTx{s: s}); err != nil {
		s.variants = snapshot
		return err
	}
	return nil
}

func (s *memStore) variantsByIDsLocked(ids []string) ([]Variant, error) {
	var out []Variant
	for _, id := range ids {
		if v, ok := s.variants[id]; ok {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (s *memStore) decrementLocked(variantID string, qty int) (bool, error) {
	v, ok := s.variants[variantID]
	if !ok || v.Stock < qty {
		return false, nil
	}
	v.Stock -= qty
	return true, nil
}

func (s *memStore) incrementLocked(variantID string, qty int) error {
	if v, ok := s.variants[variantID]; ok {
		v.Stock += qty
	}
	return nil
}

// memTx exposes the store without re-locking; the transaction mutex is
// already held by RunAtomic.
type memTx struct {
	s *memStore
}

func (t *memTx) VariantsByIDs(ctx context.Context, ids []string) ([]Variant, error) {
	return t.s.variantsByIDsLocked(ids)
}

func (t *memTx) DecrementStock(ctx context.Context, variantID string, qty int) (bool, error) {
	return t.s.decrementLocked(variantID, qty)
}

func (t *memTx) IncrementStock(ctx context.Context, variantID string, qty int) error {
	return t.s.incrementLocked(variantID, qty)
}

func (t *memTx) OrderItemQuantities(ctx context.Context, orderID string) ([]ItemQuantity, error) {
	return t.s.orderItems[orderID], nil
}
