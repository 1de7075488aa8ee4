// Package httperr renders errors as {"detail": ...} JSON responses.
package httperr

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/fresh-meat-hub/internal/apperr"
)

// Handler is the fiber.ErrorHandler for the app. Typed errors keep their
// mapped status, *fiber.Error keeps its code and anything else is a 500.
func Handler(log *slog.Logger) fiber.ErrorHandler {
	if log == nil {
		log = slog.Default()
	}
	return func(c *fiber.Ctx, err error) error {
		status, detail := Resolve(err)
		if status >= fiber.StatusInternalServerError {
			log.Error("request failed",
				"method", c.Method(),
				"path", c.Path(),
				"status", status,
				"error", err,
			)
		}
		return c.Status(status).JSON(fiber.Map{"detail": detail})
	}
}

// Resolve maps err to the status code and client-facing detail.
func Resolve(err error) (int, string) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, fe.Message
	}
	if apperr.KindOf(err) != 0 {
		return apperr.Status(err), apperr.Detail(err)
	}
	return fiber.StatusInternalServerError, err.Error()
}

// Respond writes err immediately instead of deferring to the error handler,
// so middleware after the handler observes the final status code.
func Respond(c *fiber.Ctx, err error) error {
	status, detail := Resolve(err)
	return c.Status(status).JSON(fiber.Map{"detail": detail})
}

// NotFound answers routes that matched nothing.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Route not found"})
}
