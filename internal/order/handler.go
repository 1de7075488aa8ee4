package order

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/fresh-meat-hub/internal/apperr"
)

// Handler exposes checkout publicly and order management to admins.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(r fiber.Router) {
	r.Post("/orders", h.createOrder)
}

func (h *Handler) RegisterProtectedRoutes(r fiber.Router, guard fiber.Handler) {
	r.Get("/orders", guard, h.getOrders)
	r.Get("/orders/:id", guard, h.getOrder)
	r.Put("/orders/:id/status", guard, h.updateStatus)
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	payload := new(CreateInput)
	if err := c.BodyParser(payload); err != nil {
		return apperr.Validation("Invalid request body")
	}

	created, err := h.service.Create(c.UserContext(), *payload)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) getOrders(c *fiber.Ctx) error {
	orders, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	o, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(o)
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	payload := new(statusUpdate)
	if err := c.BodyParser(payload); err != nil {
		return apperr.Validation("Invalid request body")
	}

	o, err := h.service.UpdateStatus(c.UserContext(), c.Params("id"), payload.Status)
	if err != nil {
		return err
	}
	return c.JSON(o)
}
