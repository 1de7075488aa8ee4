// Package pincode answers whether a delivery pincode is inside the service
// area.
package pincode

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/fresh-meat-hub/internal/apperr"
)

const (
	msgServiceable   = "Service Available"
	msgUnserviceable = "Not Serviceable in this area"
)

// Result is the answer to a serviceability check.
type Result struct {
	Pincode     string `json:"pincode"`
	Serviceable bool   `json:"serviceable"`
	Message     string `json:"message"`
}

// Checker holds the fixed allow-list resolved at start-up. It is safe for
// concurrent use because it is never modified.
type Checker struct {
	allowed map[string]struct{}
}

func NewChecker(codes []string) *Checker {
	c := &Checker{allowed: make(map[string]struct{}, len(codes))}
	for _, code := range codes {
		if code = strings.TrimSpace(code); code != "" {
			c.allowed[code] = struct{}{}
		}
	}
	return c
}

// IsServiceable matches code exactly; surrounding spaces make it unknown.
func (c *Checker) IsServiceable(code string) bool {
	_, ok := c.allowed[code]
	return ok
}

func (c *Checker) Check(code string) Result {
	r := Result{Pincode: code, Serviceable: c.IsServiceable(code), Message: msgUnserviceable}
	if r.Serviceable {
		r.Message = msgServiceable
	}
	return r
}

type Handler struct {
	checker *Checker
}

func NewHandler(c *Checker) *Handler {
	return &Handler{checker: c}
}

func (h *Handler) RegisterPublicRoutes(r fiber.Router) {
	r.Post("/check-pincode", h.checkPincode)
}

func (h *Handler) checkPincode(c *fiber.Ctx) error {
	var payload struct {
		Pincode string `json:"pincode"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return apperr.Validation("Invalid request body")
	}
	return c.JSON(h.checker.Check(payload.Pincode))
}
