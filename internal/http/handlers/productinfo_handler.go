package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"shopapi/internal/domain"
	"shopapi/internal/services"
)

// ProductInfoHandler serves the read-only listing API. Listings exist
// only as a side effect of product creation or catalog import, so the
// mutating verbs are registered with notAllowed guards in main.
type ProductInfoHandler struct {
	Catalog *services.CatalogService
}

func (h *ProductInfoHandler) List(c *fiber.Ctx) error {
	out, err := h.Catalog.ListInfo(c.Query("product"), c.Query("shop"))
	if err != nil {
		return fail(c, "product_info.list", err)
	}
	if out == nil {
		out = []domain.ProductInfo{}
	}
	return c.JSON(out)
}

func (h *ProductInfoHandler) Get(c *fiber.Ctx) error {
	v, err := h.Catalog.GetInfo(c.Params("id"))
	if err != nil {
		return fail(c, "product_info.get", err)
	}
	return c.JSON(v)
}

// Availability maps a listing's stock to a coarse status for clients
// that only need to know whether ordering can succeed.
func (h *ProductInfoHandler) Availability(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Query("productInfoId"))
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing productInfoId"})
	}
	pi, status, err := h.Catalog.Availability(id)
	if err != nil {
		return fail(c, "product_info.availability", err)
	}
	return c.JSON(fiber.Map{"status": status, "qty": pi.Quantity})
}
