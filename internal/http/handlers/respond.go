package handlers

import (
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"shopapi/internal/domain"
	applog "shopapi/internal/log"
)

var valid = validator.New()

// parseBody decodes and validates a JSON request struct; a non-nil
// return has already written the 400 response.
func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		applog.Security(c, "request.body.malformed", map[string]any{"error": err.Error()})
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed JSON body"})
		return err
	}
	if err := valid.Struct(dst); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"error": err.Error()})
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		return err
	}
	return nil
}

// fail maps business error kinds to HTTP statuses and writes the
// JSON error response.
func fail(c *fiber.Ctx, action string, err error) error {
	var (
		stockErr *domain.InsufficientStockError
		catErr   *domain.UnknownCategoryError
		parErr   *domain.UnknownParameterError
		parseErr *domain.ParseError
	)
	switch {
	case errors.As(err, &stockErr):
		applog.Security(c, action, map[string]any{
			"product_info_id": stockErr.ProductInfoID,
			"requested":       stockErr.Requested,
			"available":       stockErr.Available,
		})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":           stockErr.Error(),
			"product_info_id": stockErr.ProductInfoID,
			"requested":       stockErr.Requested,
			"available":       stockErr.Available,
		})
	case errors.As(err, &catErr), errors.As(err, &parErr), errors.As(err, &parseErr),
		errors.Is(err, domain.ErrEmptyOrder),
		errors.Is(err, domain.ErrDuplicateShop),
		errors.Is(err, domain.ErrWrongUserType),
		errors.Is(err, domain.ErrNoShop),
		errors.Is(err, domain.ErrLinkResolution),
		errors.Is(err, domain.ErrDownload),
		errors.Is(err, domain.ErrFileWrite):
		applog.Security(c, action, map[string]any{"error": err.Error()})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrNotOwner):
		applog.Security(c, action, map[string]any{"error": err.Error()})
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, sql.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	default:
		applog.Error(c, action, err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}

// NotAllowed rejects mutations the API forbids by contract.
func NotAllowed(message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		applog.Security(c, "method.not.allowed", map[string]any{"path": c.Path()})
		return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{"error": message})
	}
}
