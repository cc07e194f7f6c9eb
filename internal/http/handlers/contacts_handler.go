package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopapi/internal/domain"
	applog "shopapi/internal/log"
	"shopapi/internal/repos"
	"shopapi/internal/validate"

	"github.com/google/uuid"
)

// ContactsHandler manages a user's saved address book, separate from
// the per-order contact snapshots.
type ContactsHandler struct {
	Contacts *repos.ContactsRepo
}

type contactsReq struct {
	City     string `json:"city" validate:"required,max=60"`
	District string `json:"district" validate:"max=60"`
	Street   string `json:"street" validate:"required,max=60"`
	House    string `json:"house" validate:"required,max=60"`
	Building string `json:"building" validate:"max=60"`
	Phone    string `json:"phone" validate:"required,max=20"`
}

func (h *ContactsHandler) List(c *fiber.Ctx) error {
	out, err := h.Contacts.ListByUser(currentUser(c).ID)
	if err != nil {
		return fail(c, "contacts.list", err)
	}
	if out == nil {
		out = []domain.Contacts{}
	}
	return c.JSON(out)
}

func (h *ContactsHandler) Create(c *fiber.Ctx) error {
	var req contactsReq
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	phone, ok := validate.Phone(req.Phone)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid phone number"})
	}

	row := domain.Contacts{
		ID:       uuid.NewString(),
		UserID:   currentUser(c).ID,
		City:     req.City,
		District: req.District,
		Street:   req.Street,
		House:    req.House,
		Building: req.Building,
		Phone:    phone,
	}
	if err := h.Contacts.Create(row); err != nil {
		return fail(c, "contacts.create.fail", err)
	}
	applog.Audit(c, "contacts.create", map[string]any{"contacts_id": row.ID})
	return c.Status(fiber.StatusCreated).JSON(row)
}

func (h *ContactsHandler) Update(c *fiber.Ctx) error {
	var req contactsReq
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	row, err := h.Contacts.Get(c.Params("id"))
	if err != nil {
		return fail(c, "contacts.update", err)
	}
	if row.UserID != currentUser(c).ID {
		return fail(c, "contacts.update.denied", domain.ErrNotOwner)
	}
	phone, ok := validate.Phone(req.Phone)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid phone number"})
	}

	row.City, row.District, row.Street = req.City, req.District, req.Street
	row.House, row.Building, row.Phone = req.House, req.Building, phone
	if err := h.Contacts.Update(row); err != nil {
		return fail(c, "contacts.update.fail", err)
	}
	return c.JSON(row)
}
