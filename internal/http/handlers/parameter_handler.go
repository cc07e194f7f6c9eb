package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "shopapi/internal/log"
	"shopapi/internal/services"
)

type ParameterHandler struct {
	Catalog *services.CatalogService
}

func (h *ParameterHandler) List(c *fiber.Ctx) error {
	params, err := h.Catalog.ListParameters()
	if err != nil {
		return fail(c, "parameters.list", err)
	}
	return c.JSON(params)
}

func (h *ParameterHandler) Create(c *fiber.Ctx) error {
	var req nameReq
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	p, err := h.Catalog.CreateParameter(req.Name)
	if err != nil {
		return fail(c, "parameters.create.fail", err)
	}
	applog.Audit(c, "parameters.create", map[string]any{"name": p.Name})
	return c.Status(fiber.StatusCreated).JSON(p)
}
