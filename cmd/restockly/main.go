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

	"restockly/internal/catalog"
	"restockly/internal/config"
	"restockly/internal/http/handlers"
	applog "restockly/internal/log"
	"restockly/internal/repos"
	"restockly/internal/secrets"
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

	box, err := secrets.NewBox(cfg.SecretKeyHex)
	if err != nil {
		log.Fatal(err)
	}
	shopRepo := repos.NewShopRepo(db, box)
	if err := repos.SeedDevShop(shopRepo, cfg.DevShop, cfg.DevShopToken); err != nil {
		log.Fatal(err)
	}

	cat := catalog.NewGraphQLClient(shopRepo, cfg.CatalogAPIVersion, cfg.CatalogTimeout, cfg.CatalogCacheTTL)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and answer with a friendly message; never leak internals.
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "something went wrong, please try again",
			})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 256 << 10 // 256 KiB, forms only

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	deps := handlers.NewDeps(db, cat)

	// Admin API: key + shop scoping on every route
	api := app.Group("/api/v1", handlers.RequireAPIKey(cfg.APIKey), handlers.RequireShop())

	searchLimiter := limiter.New(limiter.Config{
		Max:        30,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|search"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.search.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})
	api.Get("/products/search", searchLimiter, deps.SearchHandler.Search)
	api.Get("/products", deps.ProductsHandler.Details)

	api.Get("/config", deps.ConfigHandler.Get)
	api.Get("/config/effective", deps.ConfigHandler.Effective)
	api.Get("/config/products", deps.ProductsHandler.Configured)
	api.Post("/config/out-of-stock", deps.ConfigHandler.SaveOutOfStock)
	api.Post("/config/preorder", deps.ConfigHandler.SavePreorder)
	api.Post("/config/warranty", deps.ConfigHandler.SaveWarranty)

	api.Get("/settings", deps.SettingsHandler.Get)
	api.Post("/settings", deps.SettingsHandler.Save)

	api.Get("/subscriptions/pending", deps.SubscriptionHandler.Pending)
	api.Post("/subscriptions/:id/notified", deps.SubscriptionHandler.MarkNotified)
	api.Post("/subscriptions/:id/error", deps.SubscriptionHandler.MarkError)

	// Public storefront surface: shop-scoped, throttled, no API key
	subscribeLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|subscribe"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.subscribe.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many requests, retry soon"})
		},
	})
	public := app.Group("/public", handlers.RequireShop())
	public.Post("/subscriptions", subscribeLimiter, deps.SubscriptionHandler.Subscribe)
	public.Get("/config", deps.ConfigHandler.Effective)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	log.Fatal(app.Listen(":" + cfg.Port))
}
