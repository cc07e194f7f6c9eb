package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "shopapi/internal/log"
	"shopapi/internal/services"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

type nameReq struct {
	Name string `json:"name" validate:"required,max=50"`
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories(c.Query("name"))
	if err != nil {
		return fail(c, "categories.list", err)
	}
	return c.JSON(cats)
}

// Create is admin-only; the name is stored canonicalized.
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req nameReq
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	cat, err := h.Catalog.CreateCategory(req.Name)
	if err != nil {
		return fail(c, "categories.create.fail", err)
	}
	applog.Audit(c, "categories.create", map[string]any{"name": cat.Name})
	return c.Status(fiber.StatusCreated).JSON(cat)
}
