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

type AdminHandler struct {
	userService *services.UserService
	authService *services.AuthService
}

func NewAdminHandler(userService *services.UserService, authService *services.AuthService) *AdminHandler {
	return &AdminHandler{userService: userService, authService: authService}
}

func (h *AdminHandler) Register(c *fiber.Ctx) error {
	var input services.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validation.Struct(input); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	admin, err := h.userService.Create(c.UserContext(), models.UserTypeAdmin, input)
	if err != nil {
		return fail(c, err)
	}

	return respond(c, fiber.StatusCreated, i18n.KeyAdminCreated, admin.ToResponse())
}

func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validation.Struct(input); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Login(c.UserContext(), models.UserTypeAdmin, input)
	if err != nil {
		return fail(c, err)
	}

	return respond(c, fiber.StatusOK, i18n.KeyLoginSuccess, result)
}

func (h *AdminHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	admins, meta, err := h.userService.List(c.UserContext(), models.UserTypeAdmin, page, limit)
	if err != nil {
		return fail(c, err)
	}

	items := make([]models.UserResponse, len(admins))
	for i, admin := range admins {
		items[i] = admin.ToResponse()
	}
	return respondPage(c, i18n.KeyListed, items, meta)
}

func (h *AdminHandler) Get(c *fiber.Ctx) error {
	admin, err := h.userService.Get(c.UserContext(), models.UserTypeAdmin, c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, i18n.KeyFetched, admin.ToResponse())
}

func (h *AdminHandler) Update(c *fiber.Ctx) error {
	var input services.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validation.Struct(input); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	admin, err := h.userService.Update(c.UserContext(), models.UserTypeAdmin, c.Params("id"), input)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, i18n.KeyAdminUpdated, admin.ToResponse())
}

func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	if err := h.userService.Delete(c.UserContext(), models.UserTypeAdmin, c.Params("id")); err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, i18n.KeyAdminDeleted, nil)
}
