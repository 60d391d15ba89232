package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"storefront-api/internal/i18n"
	"storefront-api/internal/middleware"
	"storefront-api/internal/models"
	"storefront-api/internal/services"
	"storefront-api/internal/validation"
)

type CustomerHandler struct {
	userService *services.UserService
	authService *services.AuthService
}

func NewCustomerHandler(userService *services.UserService, authService *services.AuthService) *CustomerHandler {
	return &CustomerHandler{userService: userService, authService: authService}
}

func (h *CustomerHandler) Register(c *fiber.Ctx) error {
	var input services.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validation.Struct(input); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.userService.RegisterCustomer(c.UserContext(), input)
	if err != nil {
		return fail(c, err)
	}

	return respond(c, fiber.StatusCreated, i18n.KeyCustomerCreated, result)
}

func (h *CustomerHandler) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validation.Struct(input); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Login(c.UserContext(), models.UserTypeCustomer, input)
	if err != nil {
		return fail(c, err)
	}

	return respond(c, fiber.StatusOK, i18n.KeyLoginSuccess, result)
}

// Profile returns the authenticated customer's own account.
func (h *CustomerHandler) Profile(c *fiber.Ctx) error {
	customer, err := h.userService.Get(c.UserContext(), models.UserTypeCustomer, middleware.GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, i18n.KeyFetched, customer.ToResponse())
}

func (h *CustomerHandler) UpdateProfile(c *fiber.Ctx) error {
	var input services.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validation.Struct(input); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	// customers cannot deactivate themselves through this endpoint
	input.IsActive = nil

	customer, err := h.userService.Update(c.UserContext(), models.UserTypeCustomer, middleware.GetUserID(c), input)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, i18n.KeyCustomerUpdated, customer.ToResponse())
}

// List is admin-only and pages through customer accounts.
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	customers, meta, err := h.userService.List(c.UserContext(), models.UserTypeCustomer, page, limit)
	if err != nil {
		return fail(c, err)
	}

	items := make([]models.UserResponse, len(customers))
	for i, customer := range customers {
		items[i] = customer.ToResponse()
	}
	return respondPage(c, i18n.KeyListed, items, meta)
}
