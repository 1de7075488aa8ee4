// Package router assembles the fiber application: middleware chain, the
// /api routes of every domain package, metrics and health endpoints.
package router

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/wichananm65/fresh-meat-hub/internal/admin"
	"github.com/wichananm65/fresh-meat-hub/internal/category"
	"github.com/wichananm65/fresh-meat-hub/internal/config"
	"github.com/wichananm65/fresh-meat-hub/internal/interface/http/httperr"
	"github.com/wichananm65/fresh-meat-hub/internal/metrics"
	"github.com/wichananm65/fresh-meat-hub/internal/order"
	"github.com/wichananm65/fresh-meat-hub/internal/pincode"
	"github.com/wichananm65/fresh-meat-hub/internal/product"
	"github.com/wichananm65/fresh-meat-hub/internal/session"
	"github.com/wichananm65/fresh-meat-hub/internal/stats"
	"github.com/wichananm65/fresh-meat-hub/internal/upload"
)

// Deps are the handlers and shared services the app is built from.
type Deps struct {
	Config   config.Config
	Log      *slog.Logger
	Metrics  *metrics.Metrics
	Sessions *session.Manager

	Categories *category.Handler
	Products   *product.Handler
	Orders     *order.Handler
	Pincodes   *pincode.Handler
	Stats      *stats.Handler
	Admin      *admin.Handler
	Upload     *upload.Handler
}

func New(d Deps) *fiber.App {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	bodyLimit := d.Config.BodyLimitMB
	if bodyLimit <= 0 {
		bodyLimit = 50
	}

	app := fiber.New(fiber.Config{
		AppName:               "fresh-meat-hub",
		ErrorHandler:          httperr.Handler(log),
		BodyLimit:             bodyLimit * 1024 * 1024,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(d.Config.CORSOriginList(), ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(requestLogger(log))
	if d.Metrics != nil {
		app.Use(d.Metrics.Middleware())
		app.Get("/metrics", d.Metrics.Handler())
	}

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Fresh Meat Hub API - Welcome!"})
	})

	guard := adminGuard(d)

	d.Pincodes.RegisterPublicRoutes(api)
	d.Admin.RegisterPublicRoutes(api)
	d.Admin.RegisterProtectedRoutes(api, guard)
	d.Categories.RegisterPublicRoutes(api)
	d.Categories.RegisterProtectedRoutes(api, guard)
	d.Products.RegisterPublicRoutes(api)
	d.Products.RegisterProtectedRoutes(api, guard)
	d.Orders.RegisterPublicRoutes(api)
	d.Orders.RegisterProtectedRoutes(api, guard)
	d.Stats.RegisterProtectedRoutes(api, guard)
	d.Upload.RegisterProtectedRoutes(api, guard)

	app.Use(httperr.NotFound)
	return app
}

// adminGuard is attached per route, never to a group, so unknown paths
// still fall through to the 404 handler.
func adminGuard(d Deps) fiber.Handler {
	if !d.Config.AdminAuthRequired || d.Sessions == nil {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return d.Sessions.Middleware()
}

// requestLogger writes one line per request, tagged with the request id.
func requestLogger(log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status, _ = httperr.Resolve(err)
		}
		log.Info("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration", time.Since(start).String(),
			"ip", c.IP(),
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
		)
		return err
	}
}
