package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"storefront-api/internal/i18n"
	"storefront-api/internal/middleware"
	"storefront-api/internal/models"
	"storefront-api/internal/repository"
	"storefront-api/internal/services"
	"storefront-api/internal/validation"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	filter := repository.ProductFilter{
		Search:       c.Query("search"),
		Status:       models.ProductStatus(c.Query("status")),
		Type:         models.ProductType(c.Query("type")),
		CategoryID:   c.Query("category_id"),
		IsBestPrice:  boolQuery(c, "is_best_price"),
		IsExclusive:  boolQuery(c, "is_exclusive"),
		IsTopSelling: boolQuery(c, "is_top_selling"),
		IsNewArrival: boolQuery(c, "is_new_arrival"),
	}

	products, meta, err := h.productService.List(c.UserContext(), filter, page, limit)
	if err != nil {
		return fail(c, err)
	}
	return respondPage(c, i18n.KeyListed, products, meta)
}

func boolQuery(c *fiber.Ctx, key string) *bool {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	product, err := h.productService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, i18n.KeyFetched, product)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var input services.CreateProductInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validation.Struct(input); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	product, err := h.productService.Create(c.UserContext(), middleware.GetUserID(c), input)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, i18n.KeyProductCreated, product)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var input services.CreateProductInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validation.Struct(input); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	product, err := h.productService.Update(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, i18n.KeyProductUpdated, product)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.productService.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, i18n.KeyProductDeleted, nil)
}
