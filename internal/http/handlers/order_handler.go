package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopapi/internal/domain"
	applog "shopapi/internal/log"
	"shopapi/internal/services"
	"shopapi/internal/validate"
)

type OrderHandler struct {
	Orders *services.OrderService
}

type positionReq struct {
	ProductInfoID string `json:"product_info_id" validate:"required"`
	Quantity      int    `json:"quantity" validate:"required,min=1"`
}

type orderReq struct {
	Contacts  contactsReq   `json:"contacts" validate:"required"`
	Positions []positionReq `json:"positions" validate:"dive"`
}

// Place creates an order: stock is reserved immediately, and the
// contacts snapshot, order header and items land in one transaction.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var req orderReq
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	phone, ok := validate.Phone(req.Contacts.Phone)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid phone number"})
	}

	contacts := services.ContactsInput{
		City:     req.Contacts.City,
		District: req.Contacts.District,
		Street:   req.Contacts.Street,
		House:    req.Contacts.House,
		Building: req.Contacts.Building,
		Phone:    phone,
	}
	positions := make([]services.Position, 0, len(req.Positions))
	for _, p := range req.Positions {
		positions = append(positions, services.Position{
			ProductInfoID: p.ProductInfoID,
			Quantity:      p.Quantity,
		})
	}

	u := currentUser(c)
	v, err := h.Orders.Place(u.ID, contacts, positions)
	if err != nil {
		return fail(c, "orders.place.fail", err)
	}
	applog.Audit(c, "orders.place", map[string]any{
		"order_id":  v.ID,
		"positions": len(v.Positions),
	})
	return c.Status(fiber.StatusCreated).JSON(v)
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.Orders.List(currentUser(c))
	if err != nil {
		return fail(c, "orders.list", err)
	}
	return c.JSON(out)
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	v, err := h.Orders.Get(c.Params("id"))
	if err != nil {
		return fail(c, "orders.get", err)
	}
	u := currentUser(c)
	if v.UserID != u.ID && !u.IsAdmin() {
		applog.Security(c, "access.denied.order", map[string]any{"order_id": v.ID})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	return c.JSON(v)
}

type stateReq struct {
	State string `json:"state" validate:"required"`
}

// UpdateState moves an order through its lifecycle (admin route).
func (h *OrderHandler) UpdateState(c *fiber.Ctx) error {
	var req stateReq
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	if !domain.ValidOrderState(req.State) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown order state"})
	}
	v, err := h.Orders.UpdateState(c.Params("id"), req.State)
	if err != nil {
		return fail(c, "orders.state.fail", err)
	}
	applog.Audit(c, "orders.state", map[string]any{"order_id": v.ID, "state": v.State})
	return c.JSON(v)
}
