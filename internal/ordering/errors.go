package ordering

import (
	"errors"
	"fmt"
)

var (
	// ErrVariantRequired is returned when a line item request is missing
	// its variant reference.
	ErrVariantRequired = errors.New("order item variant required")

	// ErrInvalidVariantSelection is returned when a requested variant does
	// not exist, is deleted, or does not belong to the stated product.
	ErrInvalidVariantSelection = errors.New("invalid product variant selection")
)

// InsufficientStockError reports demand exceeding availability, either at
// the advisory pre-check or at the authoritative conditional decrement.
type InsufficientStockError struct {
	SKU       string
	VariantID string
}

func (e *InsufficientStockError) Error() string {
	if e.SKU != "" {
		return fmt.Sprintf("insufficient stock for variant %s", e.SKU)
	}
	return "insufficient stock"
}

// InvalidTransitionError reports a forbidden order status transition.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid order status transition %s -> %s", e.From, e.To)
}
