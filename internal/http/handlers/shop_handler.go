package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "shopapi/internal/log"
	"shopapi/internal/services"
)

type ShopHandler struct {
	Shops *services.ShopService
}

type shopReq struct {
	Name  string `json:"name" validate:"required,max=80"`
	State *bool  `json:"state"`
}

func (r *shopReq) state() bool {
	if r.State == nil {
		return true
	}
	return *r.State
}

func (h *ShopHandler) List(c *fiber.Ctx) error {
	shops, err := h.Shops.List()
	if err != nil {
		return fail(c, "shops.list", err)
	}
	return c.JSON(shops)
}

func (h *ShopHandler) Get(c *fiber.Ctx) error {
	v, err := h.Shops.Get(c.Params("id"))
	if err != nil {
		return fail(c, "shops.get", err)
	}
	return c.JSON(v)
}

func (h *ShopHandler) Create(c *fiber.Ctx) error {
	var req shopReq
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	v, err := h.Shops.Create(currentUser(c), req.Name, req.state())
	if err != nil {
		return fail(c, "shops.create.fail", err)
	}
	applog.Audit(c, "shops.create", map[string]any{"shop_id": v.ID})
	return c.Status(fiber.StatusCreated).JSON(v)
}

func (h *ShopHandler) Update(c *fiber.Ctx) error {
	var req shopReq
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	v, err := h.Shops.Update(currentUser(c), c.Params("id"), req.Name, req.state())
	if err != nil {
		return fail(c, "shops.update.fail", err)
	}
	applog.Audit(c, "shops.update", map[string]any{"shop_id": v.ID})
	return c.JSON(v)
}

func (h *ShopHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Shops.Delete(currentUser(c), id); err != nil {
		return fail(c, "shops.delete.fail", err)
	}
	applog.Audit(c, "shops.delete", map[string]any{"shop_id": id})
	return c.JSON(fiber.Map{"ok": true})
}
