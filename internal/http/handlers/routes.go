package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	applog "partscout/internal/log"
)

// Routes mounts every page and API endpoint on app.
func Routes(app *fiber.App, d *Deps) {
	app.Get("/", func(c *fiber.Ctx) error { return c.Redirect("/search") })

	// each search fans out to every vendor
	searchLimiter := limiter.New(limiter.Config{
		Max:        20,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.search.hit", nil)
			return notFound(c, fiber.StatusTooManyRequests, "Too many searches. Please wait a minute.")
		},
	})
	app.Get("/search", searchLimiter, d.SearchHandler.Search)

	api := app.Group("/api/v1")
	api.Get("/search", searchLimiter, d.SearchHandler.API)

	app.Get("/cart", d.CartHandler.View)
	app.Post("/cart", d.CartHandler.Add)
	app.Post("/cart/custom", d.CartHandler.AddCustom)
	app.Post("/cart/remove", d.CartHandler.Remove)
	app.Post("/cart/clear", d.CartHandler.Clear)

	app.Post("/cart/snapshots", d.SnapshotHandler.Save)
	app.Post("/cart/snapshots/:index/restore", d.SnapshotHandler.Restore)
	app.Post("/cart/snapshots/:index/copy", d.SnapshotHandler.Copy)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return notFound(c, fiber.StatusNotFound, "Page not found")
	})
}
