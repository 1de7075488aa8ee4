package order

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wichananm65/fresh-meat-hub/internal/apperr"
)

// Serviceability decides whether a pincode can be delivered to.
type Serviceability interface {
	IsServiceable(pincode string) bool
}

// Recorder receives order events for metrics.
type Recorder interface {
	OrderPlaced()
	AuditFailed()
}

type nopRecorder struct{}

func (nopRecorder) OrderPlaced() {}
func (nopRecorder) AuditFailed() {}

// Service provides business logic for orders.
type Service struct {
	repo     Repository
	pincodes Serviceability
	audit    AuditLog
	recorder Recorder
	log      *slog.Logger
	now      func() time.Time
}

type Option func(*Service)

func WithAuditLog(a AuditLog) Option { return func(s *Service) { s.audit = a } }

func WithLogger(l *slog.Logger) Option { return func(s *Service) { s.log = l } }

func WithRecorder(r Recorder) Option { return func(s *Service) { s.recorder = r } }

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func NewService(r Repository, pincodes Serviceability, opts ...Option) *Service {
	s := &Service{
		repo:     r,
		pincodes: pincodes,
		audit:    discardAuditLog{},
		recorder: nopRecorder{},
		log:      slog.Default(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create places an order. The pincode is checked before anything else and
// nothing is stored when it is not serviceable. The audit entry is best
// effort: a failed append is logged and the order is still returned.
func (s *Service) Create(ctx context.Context, in CreateInput) (Order, error) {
	if !s.pincodes.IsServiceable(in.Pincode) {
		return Order{}, apperr.Validation("Pincode not serviceable")
	}
	if err := validate(in); err != nil {
		return Order{}, err
	}

	o := Order{
		ID:           uuid.NewString(),
		CustomerName: strings.TrimSpace(in.CustomerName),
		Phone:        strings.TrimSpace(in.Phone),
		Address:      strings.TrimSpace(in.Address),
		Pincode:      in.Pincode,
		Items:        make([]Item, len(in.Items)),
		TotalPrice:   in.TotalPrice,
		PaymentMode:  strings.TrimSpace(in.PaymentMode),
		Status:       StatusPending,
		CreatedAt:    s.now(),
	}
	if o.PaymentMode == "" {
		o.PaymentMode = DefaultPaymentMode
	}
	for i, it := range in.Items {
		if strings.TrimSpace(it.Weight) == "" {
			it.Weight = DefaultItemWeight
		}
		o.Items[i] = it
	}
	if !o.totalMatches() {
		s.log.Warn("order total differs from items",
			"order_id", o.ID,
			"total_price", o.TotalPrice,
			"items_total", o.ItemsTotal(),
		)
	}

	created, err := s.repo.Create(ctx, o)
	if err != nil {
		return Order{}, err
	}

	if err := s.audit.Append(created); err != nil {
		s.recorder.AuditFailed()
		s.log.Error("failed to write order audit entry", "order_id", created.ID, "error", err)
	}
	s.recorder.OrderPlaced()
	s.log.Info("order placed", "order_id", created.ID, "pincode", created.Pincode, "items", len(created.Items))
	return created, nil
}

func validate(in CreateInput) error {
	switch {
	case strings.TrimSpace(in.CustomerName) == "":
		return apperr.Validation("Customer name is required")
	case strings.TrimSpace(in.Phone) == "":
		return apperr.Validation("Phone is required")
	case strings.TrimSpace(in.Address) == "":
		return apperr.Validation("Address is required")
	case len(in.Items) == 0:
		return apperr.Validation("Order must contain at least one item")
	case in.TotalPrice < 0:
		return apperr.Validation("Total price must not be negative")
	}
	for _, it := range in.Items {
		switch {
		case strings.TrimSpace(it.ProductID) == "" || strings.TrimSpace(it.ProductName) == "":
			return apperr.Validation("Each item needs a productId and productName")
		case it.Quantity < 1:
			return apperr.Validation("Item quantity must be at least 1")
		case it.Price < 0:
			return apperr.Validation("Item price must not be negative")
		}
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]Order, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return Order{}, apperr.NotFound("Order not found")
	}
	return o, err
}

// UpdateStatus sets the status to any of the four literals, from any
// current status.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (Order, error) {
	st, ok := ParseStatus(status)
	if !ok {
		return Order{}, apperr.Validation("Invalid status. Must be one of: " + statusList())
	}

	o, err := s.repo.UpdateStatus(ctx, id, st)
	if errors.Is(err, ErrNotFound) {
		return Order{}, apperr.NotFound("Order not found")
	}
	if err != nil {
		return Order{}, err
	}
	s.log.Info("order status updated", "order_id", id, "status", string(st))
	return o, nil
}

// Count and Revenue back the dashboard statistics.
func (s *Service) Count(ctx context.Context, status Status) (int64, error) {
	return s.repo.Count(ctx, status)
}

func (s *Service) Revenue(ctx context.Context, status Status) (float64, error) {
	return s.repo.Revenue(ctx, status)
}
