package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusReadyForPickup.Valid())
	assert.False(t, Status("SHIPPING").Valid())
	assert.False(t, Status("").Valid())
}

func TestCheckCancellable(t *testing.T) {
	assert.NoError(t, CheckCancellable(StatusPending))

	for _, from := range []Status{
		StatusCancelled,
		StatusShipped,
		StatusDelivered,
		StatusRefunded,
		StatusProcessing,
	} {
		err := CheckCancellable(from)
		var transErr *InvalidTransitionError
		require.ErrorAs(t, err, &transErr, "from %s", from)
		assert.Equal(t, from, transErr.From)
		assert.Equal(t, StatusCancelled, transErr.To)
	}
}

func TestCheckTransition(t *testing.T) {
	cases := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"shipped to cancelled", StatusShipped, StatusCancelled, false},
		{"delivered to cancelled", StatusDelivered, StatusCancelled, false},
		{"refunded to cancelled", StatusRefunded, StatusCancelled, false},
		{"same status is a no-op", StatusShipped, StatusShipped, true},
		{"cancelled to cancelled", StatusCancelled, StatusCancelled, true},
		{"pending to shipped", StatusPending, StatusShipped, true},
		{"confirmed to delivered", StatusConfirmed, StatusDelivered, true},
		{"delivered to refunded", StatusDelivered, StatusRefunded, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckTransition(tc.from, tc.to)
			if tc.allowed {
				assert.NoError(t, err)
				return
			}
			var transErr *InvalidTransitionError
			require.ErrorAs(t, err, &transErr)
			assert.Equal(t, tc.from, transErr.From)
			assert.Equal(t, tc.to, transErr.To)
		})
	}
}
