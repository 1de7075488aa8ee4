// Package stats computes the admin dashboard figures on every request.
package stats

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/fresh-meat-hub/internal/order"
)

type Stats struct {
	TotalProducts   int64   `json:"totalProducts"`
	TotalOrders     int64   `json:"totalOrders"`
	PendingOrders   int64   `json:"pendingOrders"`
	CompletedOrders int64   `json:"completedOrders"`
	TotalRevenue    float64 `json:"totalRevenue"`
}

type ProductCounter interface {
	Count(ctx context.Context) (int64, error)
}

type OrderStats interface {
	Count(ctx context.Context, status order.Status) (int64, error)
	Revenue(ctx context.Context, status order.Status) (float64, error)
}

type Service struct {
	products ProductCounter
	orders   OrderStats
}

func NewService(products ProductCounter, orders OrderStats) *Service {
	return &Service{products: products, orders: orders}
}

// Compute returns current counts and the revenue from completed orders.
func (s *Service) Compute(ctx context.Context) (Stats, error) {
	var (
		st  Stats
		err error
	)
	if st.TotalProducts, err = s.products.Count(ctx); err != nil {
		return Stats{}, err
	}
	if st.TotalOrders, err = s.orders.Count(ctx, ""); err != nil {
		return Stats{}, err
	}
	if st.PendingOrders, err = s.orders.Count(ctx, order.StatusPending); err != nil {
		return Stats{}, err
	}
	if st.CompletedOrders, err = s.orders.Count(ctx, order.StatusCompleted); err != nil {
		return Stats{}, err
	}
	if st.TotalRevenue, err = s.orders.Revenue(ctx, order.StatusCompleted); err != nil {
		return Stats{}, err
	}
	return st, nil
}

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(r fiber.Router, guard fiber.Handler) {
	r.Get("/stats", guard, h.getStats)
}

func (h *Handler) getStats(c *fiber.Ctx) error {
	st, err := h.service.Compute(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(st)
}
