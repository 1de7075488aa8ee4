package product

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wichananm65/fresh-meat-hub/internal/apperr"
)

type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		repo: repo,
		log:  log,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// List returns all products, or those in category when it is non-empty.
// The match is exact and case-sensitive.
func (s *Service) List(ctx context.Context, category string) ([]Product, error) {
	return s.repo.List(ctx, category)
}

func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return Product{}, apperr.NotFound("Product not found")
	}
	return p, err
}

// Create stores a new product. The category is not checked against the
// categories collection.
func (s *Service) Create(ctx context.Context, in CreateInput) (Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Product{}, apperr.Validation("Product name is required")
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return Product{}, apperr.Validation("Product category is required")
	}
	if in.Price == nil {
		return Product{}, apperr.Validation("Product price is required")
	}
	if *in.Price < 0 {
		return Product{}, apperr.Validation("Product price must not be negative")
	}

	p := Product{
		ID:        uuid.NewString(),
		Name:      name,
		Price:     *in.Price,
		Category:  category,
		Image:     in.Image,
		InStock:   true,
		Weight:    DefaultWeight,
		CreatedAt: s.now(),
	}
	if in.InStock != nil {
		p.InStock = *in.InStock
	}
	if in.Weight != nil && strings.TrimSpace(*in.Weight) != "" {
		p.Weight = strings.TrimSpace(*in.Weight)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return Product{}, err
	}
	s.log.Info("product created", "product_id", created.ID, "category", created.Category)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, p Patch) (Product, error) {
	if p.IsEmpty() {
		return Product{}, apperr.Validation("No update data provided")
	}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return Product{}, apperr.Validation("Product name is required")
		}
		p.Name = &name
	}
	if p.Category != nil {
		category := strings.TrimSpace(*p.Category)
		if category == "" {
			return Product{}, apperr.Validation("Product category is required")
		}
		p.Category = &category
	}
	if p.Price != nil && *p.Price < 0 {
		return Product{}, apperr.Validation("Product price must not be negative")
	}

	updated, err := s.repo.Update(ctx, id, p)
	if errors.Is(err, ErrNotFound) {
		return Product{}, apperr.NotFound("Product not found")
	}
	return updated, err
}

func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound("Product not found")
	}
	if err != nil {
		return err
	}
	s.log.Info("product deleted", "product_id", id)
	return nil
}

// Count and CountByCategory let the stats and category services read
// product totals without depending on the repository.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *Service) CountByCategory(ctx context.Context, category string) (int64, error) {
	return s.repo.CountByCategory(ctx, category)
}
