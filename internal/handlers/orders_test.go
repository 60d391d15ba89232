package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Both order listings validate the status filter before touching the
// service, so a nil service is enough to exercise the rejection path.
func TestOrderListRejectsUnknownStatusFilter(t *testing.T) {
	h := NewOrderHandler(nil)

	app := fiber.New()
	app.Get("/orders", h.List)
	app.Get("/my-orders", h.ListMine)

	for _, path := range []string{"/orders", "/my-orders"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path+"?status=SHIPPING", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, path)
		resp.Body.Close()
	}
}
