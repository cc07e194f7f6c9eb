package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "shopapi/internal/log"
	"shopapi/internal/services"
)

// ImportHandler triggers the catalog import pipeline for the calling
// shop. The resulting file link is create-only: update and delete are
// registered with notAllowed guards in main.
type ImportHandler struct {
	Importer *services.ImportService
}

type importReq struct {
	URL string `json:"url" validate:"required,url"`
}

func (h *ImportHandler) Import(c *fiber.Ctx) error {
	var req importReq
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	res, err := h.Importer.Import(c.UserContext(), currentUser(c).ID, req.URL)
	if err != nil {
		return fail(c, "import.fail", err)
	}
	applog.Audit(c, "import.done", map[string]any{
		"shop_id":  res.ShopID,
		"filename": res.Filename,
		"products": res.Products,
	})
	return c.Status(fiber.StatusCreated).JSON(res)
}
