package admin

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/wichananm65/fresh-meat-hub/internal/apperr"
	"github.com/wichananm65/fresh-meat-hub/internal/interface/http/httperr"
	"github.com/wichananm65/fresh-meat-hub/internal/session"
)

// Throttle bounds failed PIN attempts per client IP.
type Throttle struct {
	MaxAttempts int
	Window      time.Duration
}

type Handler struct {
	verifier *Verifier
	sessions *session.Manager
	throttle fiber.Handler
	log      *slog.Logger
}

func NewHandler(v *Verifier, sessions *session.Manager, t Throttle, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		verifier: v,
		sessions: sessions,
		throttle: limiter.New(limiter.Config{
			Max:                    t.MaxAttempts,
			Expiration:             t.Window,
			SkipSuccessfulRequests: true,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"detail": "Too many PIN attempts. Try again later."})
			},
		}),
		log: log,
	}
}

func (h *Handler) RegisterPublicRoutes(r fiber.Router) {
	r.Post("/admin/verify", h.throttle, h.verify)
}

func (h *Handler) RegisterProtectedRoutes(r fiber.Router, guard fiber.Handler) {
	r.Post("/admin/logout", guard, h.logout)
}

// verify writes failures itself so the limiter sees the final status.
func (h *Handler) verify(c *fiber.Ctx) error {
	var payload struct {
		Pin string `json:"pin"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return httperr.Respond(c, apperr.Validation("Invalid request body"))
	}

	if err := h.verifier.Verify(payload.Pin); err != nil {
		h.log.Warn("admin PIN rejected", "ip", c.IP())
		return httperr.Respond(c, err)
	}

	tok, err := h.sessions.Issue()
	if err != nil {
		return err
	}
	h.log.Info("admin session issued", "ip", c.IP(), "session_id", tok.ID)
	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Access granted",
		"token":     tok.Value,
		"expiresAt": tok.ExpiresAt,
	})
}

func (h *Handler) logout(c *fiber.Ctx) error {
	if claims, ok := session.FromContext(c); ok {
		if err := h.sessions.Revoke(c.UserContext(), claims); err != nil {
			return err
		}
		h.log.Info("admin session revoked", "session_id", claims.ID)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Logged out"})
}
