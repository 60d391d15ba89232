package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"storefront-api/internal/i18n"
	"storefront-api/internal/middleware"
	"storefront-api/internal/ordering"
	"storefront-api/internal/services"
	"storefront-api/internal/validation"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var input services.CreateOrderInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validation.Struct(input); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	order, err := h.orderService.Create(c.UserContext(), middleware.GetUserID(c), input)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, i18n.KeyOrderCreated, order)
}

// ListMine pages through the authenticated customer's own orders,
// optionally filtered by status.
func (h *OrderHandler) ListMine(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	status := ordering.Status(c.Query("status"))
	if status != "" && !status.Valid() {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "invalid order status")
	}

	orders, meta, err := h.orderService.ListForCustomer(c.UserContext(), middleware.GetUserID(c), status, page, limit)
	if err != nil {
		return fail(c, err)
	}
	return respondPage(c, i18n.KeyListed, orders, meta)
}

// List is the admin view over all orders, optionally filtered by status
// and customer.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	status := ordering.Status(c.Query("status"))
	if status != "" && !status.Valid() {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "invalid order status")
	}

	orders, meta, err := h.orderService.List(c.UserContext(), status, c.Query("customer_id"), page, limit)
	if err != nil {
		return fail(c, err)
	}
	return respondPage(c, i18n.KeyListed, orders, meta)
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	order, err := h.orderService.FindForUser(c.UserContext(), c.Params("id"), middleware.GetUserID(c), middleware.IsAdmin(c))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, i18n.KeyFetched, order)
}

type cancelOrderInput struct {
	Reason string `json:"reason"`
}

func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	var input cancelOrderInput
	if err := c.BodyParser(&input); err != nil && len(c.Body()) > 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "invalid request body")
	}

	order, err := h.orderService.Cancel(c.UserContext(), c.Params("id"), middleware.GetUserID(c), input.Reason)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, i18n.KeyOrderCancelled, order)
}

type updateStatusInput struct {
	Status string `json:"status" validate:"required"`
}

func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var input updateStatusInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validation.Struct(input); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	status := ordering.Status(input.Status)
	if !status.Valid() {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "invalid order status")
	}

	order, err := h.orderService.UpdateStatus(c.UserContext(), c.Params("id"), status)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, i18n.KeyOrderUpdated, order)
}
