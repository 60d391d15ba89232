package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"storefront-api/internal/i18n"
	"storefront-api/internal/middleware"
	"storefront-api/internal/ordering"
	"storefront-api/internal/services"
)

// respond wraps data in the {message, data} envelope with the message
// localized from the request's Accept-Language header.
func respond(c *fiber.Ctx, status int, messageKey string, data any) error {
	locale := i18n.ParseLocale(c.Get("Accept-Language"))
	return c.Status(status).JSON(fiber.Map{
		"message": i18n.Lookup(locale, messageKey),
		"data":    data,
	})
}

func respondPage(c *fiber.Ctx, messageKey string, items any, meta services.PageMeta) error {
	return respond(c, fiber.StatusOK, messageKey, fiber.Map{
		"items": items,
		"meta":  meta,
	})
}

// fail maps domain errors onto HTTP status codes. Anything unrecognized
// is a 500 with a generic body; the real error stays in the logs.
func fail(c *fiber.Ctx, err error) error {
	var stockErr *ordering.InsufficientStockError
	var transErr *ordering.InvalidTransitionError

	switch {
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrAccountDisabled):
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, err.Error())

	case errors.Is(err, services.ErrOrderNotOwned):
		return middleware.ErrorResponse(c, fiber.StatusForbidden, err.Error())

	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrProductNotFound):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, err.Error())

	case errors.Is(err, services.ErrEmailTaken):
		return middleware.ErrorResponse(c, fiber.StatusConflict, err.Error())

	case errors.Is(err, services.ErrEmptyOrder),
		errors.Is(err, ordering.ErrVariantRequired),
		errors.Is(err, ordering.ErrInvalidVariantSelection):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, err.Error())

	case errors.As(err, &stockErr):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, stockErr.Error())

	case errors.As(err, &transErr):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, transErr.Error())

	default:
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "internal server error")
	}
}
