package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-api/internal/ordering"
	"storefront-api/internal/services"
)

func statusForError(t *testing.T, err error) int {
	t.Helper()

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return fail(c, err)
	})

	resp, reqErr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, reqErr)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestFailStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid credentials", services.ErrInvalidCredentials, fiber.StatusUnauthorized},
		{"account disabled", services.ErrAccountDisabled, fiber.StatusUnauthorized},
		{"order not owned", services.ErrOrderNotOwned, fiber.StatusForbidden},
		{"user not found", services.ErrUserNotFound, fiber.StatusNotFound},
		{"order not found", services.ErrOrderNotFound, fiber.StatusNotFound},
		{"product not found", services.ErrProductNotFound, fiber.StatusNotFound},
		{"email taken", services.ErrEmailTaken, fiber.StatusConflict},
		{"empty order", services.ErrEmptyOrder, fiber.StatusBadRequest},
		{"variant required", ordering.ErrVariantRequired, fiber.StatusBadRequest},
		{"invalid variant", ordering.ErrInvalidVariantSelection, fiber.StatusBadRequest},
		{"insufficient stock", &ordering.InsufficientStockError{SKU: "SKU-1", VariantID: "v1"}, fiber.StatusBadRequest},
		{"invalid transition", &ordering.InvalidTransitionError{From: ordering.StatusShipped, To: ordering.StatusCancelled}, fiber.StatusBadRequest},
		{"unknown error", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, statusForError(t, tc.err))
		})
	}
}
