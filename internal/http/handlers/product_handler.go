package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "shopapi/internal/log"
	"shopapi/internal/services"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

type productParamReq struct {
	Parameter nameReq `json:"parameter" validate:"required"`
	Value     string  `json:"value" validate:"required,max=100"`
}

type productInfoReq struct {
	Quantity int `json:"quantity" validate:"min=0"`
	Price    int `json:"price" validate:"min=0"`
	PriceRRC int `json:"price_rrc" validate:"min=0"`
}

type productReq struct {
	Name     string `json:"name" validate:"required,max=80"`
	Category struct {
		Name string `json:"name" validate:"required,max=50"`
	} `json:"category" validate:"required"`
	Info   productInfoReq    `json:"product_info" validate:"required"`
	Params []productParamReq `json:"product_parameter" validate:"dive"`
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	out, err := h.Catalog.ListProducts(c.Query("name"), c.Query("category"), page, c.QueryInt("page_size", 20))
	if err != nil {
		return fail(c, "products.list", err)
	}
	return c.JSON(out)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	v, err := h.Catalog.GetProduct(c.Params("id"))
	if err != nil {
		return fail(c, "products.get", err)
	}
	return c.JSON(v)
}

// Create builds a product with one listing for the caller's shop.
// Category and parameters must already exist by canonical name.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req productReq
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	in := services.ProductInput{
		Name:         req.Name,
		CategoryName: req.Category.Name,
		Quantity:     req.Info.Quantity,
		Price:        req.Info.Price,
		PriceRRC:     req.Info.PriceRRC,
	}
	for _, p := range req.Params {
		in.Params = append(in.Params, services.ParamInput{Name: p.Parameter.Name, Value: p.Value})
	}

	v, err := h.Catalog.CreateProduct(currentUser(c), in)
	if err != nil {
		return fail(c, "products.create.fail", err)
	}
	applog.Audit(c, "products.create", map[string]any{"product_id": v.ID, "name": v.Name})
	return c.Status(fiber.StatusCreated).JSON(v)
}
