package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"shopapi/internal/config"
	"shopapi/internal/http/handlers"
	applog "shopapi/internal/log"
	"shopapi/internal/repos"
	"shopapi/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.limit.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg)

	api := app.Group("/api/v1")

	// Auth (login throttled)
	api.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, try again later"})
		},
	}), authH.Login)
	api.Post("/logout", authH.Logout)

	authed := api.Group("", handlers.RequireUser(authSvc))

	// Shops
	authed.Get("/shops", deps.ShopHandler.List)
	authed.Post("/shops", deps.ShopHandler.Create)
	authed.Get("/shops/:id", deps.ShopHandler.Get)
	authed.Put("/shops/:id", deps.ShopHandler.Update)
	authed.Delete("/shops/:id", deps.ShopHandler.Delete)

	// Categories & parameters (create is admin-only)
	authed.Get("/categories", deps.CategoryHandler.List)
	api.Post("/categories", handlers.RequireAdmin(authSvc), deps.CategoryHandler.Create)
	authed.Get("/parameters", deps.ParameterHandler.List)
	api.Post("/parameters", handlers.RequireAdmin(authSvc), deps.ParameterHandler.Create)

	// Products
	authed.Get("/products", deps.ProductHandler.List)
	authed.Post("/products", deps.ProductHandler.Create)
	authed.Get("/products/:id", deps.ProductHandler.Get)

	// Product info is read-only: listings appear only through product
	// creation or catalog import.
	authed.Get("/availability", deps.ProductInfoHandler.Availability)
	authed.Get("/product-info", deps.ProductInfoHandler.List)
	authed.Get("/product-info/:id", deps.ProductInfoHandler.Get)
	authed.Post("/product-info", handlers.NotAllowed("product info cannot be created on its own"))
	authed.Put("/product-info/:id", handlers.NotAllowed("product info cannot be updated on its own"))
	authed.Delete("/product-info/:id", handlers.NotAllowed("product info cannot be deleted on its own"))

	// Contacts
	authed.Get("/contacts", deps.ContactsHandler.List)
	authed.Post("/contacts", deps.ContactsHandler.Create)
	authed.Put("/contacts/:id", deps.ContactsHandler.Update)

	// Orders
	authed.Get("/orders", deps.OrderHandler.List)
	authed.Post("/orders", deps.OrderHandler.Place)
	authed.Get("/orders/:id", deps.OrderHandler.Get)
	api.Post("/orders/:id/state", handlers.RequireAdmin(authSvc), deps.OrderHandler.UpdateState)

	// Catalog import: the file link is create-only
	authed.Post("/import", deps.ImportHandler.Import)
	authed.Put("/import", handlers.NotAllowed("the imported file link cannot be updated"))
	authed.Delete("/import", handlers.NotAllowed("the imported file link cannot be deleted"))

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
