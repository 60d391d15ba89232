package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront-api/internal/ordering"
)

func TestOrderFilterWhere(t *testing.T) {
	where, args := OrderFilter{}.where()
	assert.Equal(t, "deleted_at IS NULL", where)
	assert.Empty(t, args)

	where, args = OrderFilter{CustomerID: "c1"}.where()
	assert.Equal(t, "deleted_at IS NULL AND customer_id = $1", where)
	assert.Equal(t, []any{"c1"}, args)

	where, args = OrderFilter{Status: ordering.StatusShipped}.where()
	assert.Equal(t, "deleted_at IS NULL AND status = $1", where)
	assert.Equal(t, []any{ordering.StatusShipped}, args)

	where, args = OrderFilter{CustomerID: "c1", Status: ordering.StatusPending}.where()
	assert.Equal(t, "deleted_at IS NULL AND customer_id = $1 AND status = $2", where)
	assert.Equal(t, []any{"c1", ordering.StatusPending}, args)
}
