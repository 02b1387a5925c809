package handlers

import (
	"errors"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	applog "partscout/internal/log"
)

type AppConfig struct {
	TemplatesDir string
	// Reload re-reads templates on every render.
	Reload bool
	// AccessLog receives one line per request; nil turns it off.
	AccessLog io.Writer
	// SecureCookies marks the CSRF cookie Secure (set behind HTTPS).
	SecureCookies bool
	// RequestsPerMinute caps each client across every route.
	RequestsPerMinute int
}

// NewApp builds the fiber app with the full middleware chain and every route.
func NewApp(cfg AppConfig, d *Deps) *fiber.App {
	views := html.New(cfg.TemplatesDir, ".html")
	views.Reload(cfg.Reload)

	app := fiber.New(fiber.Config{
		Views:        views,
		ErrorHandler: ErrorHandler,
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	app.Use(requestid.New())
	if cfg.AccessLog != nil {
		app.Use(logger.New(logger.Config{Output: cfg.AccessLog}))
	}
	app.Use(helmet.New())

	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 60
	}
	app.Use(limiter.New(limiter.Config{
		Max:        rpm,
		Expiration: time.Minute,
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   cfg.SecureCookies,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return notFound(c, fiber.StatusForbidden, "Security check failed. Please refresh and try again.")
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	Routes(app, d)
	return app
}

// ErrorHandler logs err and renders a friendly page. A *fiber.Error keeps
// its status code; anything else is a 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	msg := "Something went wrong. Please try again."
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
		if status < fiber.StatusInternalServerError {
			msg = fe.Message
		}
	}
	if status >= fiber.StatusInternalServerError {
		applog.Error(c, "server.error", err, nil)
	} else {
		applog.Info(c, "request.rejected", map[string]any{"status": status, "error": err.Error()})
	}
	if rerr := notFound(c, status, msg); rerr != nil {
		return c.Status(status).SendString(msg)
	}
	return nil
}
