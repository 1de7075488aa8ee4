package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wichananm65/fresh-meat-hub/internal/apperr"
)

// ProductCounter reports how many products reference a category by name.
type ProductCounter interface {
	CountByCategory(ctx context.Context, name string) (int64, error)
}

// Service provides business logic for categories.
type Service struct {
	repo     Repository
	products ProductCounter
	log      *slog.Logger
	now      func() time.Time
}

func NewService(repo Repository, products ProductCounter, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		repo:     repo,
		products: products,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// List returns every category ordered by ascending displayOrder.
func (s *Service) List(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return Category{}, apperr.NotFound("Category not found")
	}
	return c, err
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Category, error) {
	name := NormalizeName(in.Name)
	if name == "" {
		return Category{}, apperr.Validation("Category name is required")
	}

	c := Category{
		ID:         uuid.NewString(),
		Name:       name,
		CoverImage: in.CoverImage,
		CreatedAt:  s.now(),
	}
	if in.DisplayOrder != nil {
		c.DisplayOrder = *in.DisplayOrder
	}
	if in.Description != nil {
		c.Description = strings.TrimSpace(*in.Description)
	}

	created, err := s.repo.Create(ctx, c)
	if errors.Is(err, ErrDuplicateName) {
		return Category{}, apperr.Conflict("Category already exists")
	}
	if err != nil {
		return Category{}, err
	}
	s.log.Info("category created", "category_id", created.ID, "name", created.Name)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, p Patch) (Category, error) {
	if p.IsEmpty() {
		return Category{}, apperr.Validation("No update data provided")
	}
	if p.Name != nil {
		name := NormalizeName(*p.Name)
		if name == "" {
			return Category{}, apperr.Validation("Category name is required")
		}
		p.Name = &name
	}

	updated, err := s.repo.Update(ctx, id, p)
	switch {
	case errors.Is(err, ErrNotFound):
		return Category{}, apperr.NotFound("Category not found")
	case errors.Is(err, ErrDuplicateName):
		return Category{}, apperr.Conflict("Category name already exists")
	case err != nil:
		return Category{}, err
	}
	return updated, nil
}

// Delete removes a category unless products still reference it by name.
func (s *Service) Delete(ctx context.Context, id string) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	n, err := s.products.CountByCategory(ctx, c.Name)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Conflict(fmt.Sprintf("Cannot delete category. %d products are using this category.", n))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("Category not found")
		}
		return err
	}
	s.log.Info("category deleted", "category_id", id, "name", c.Name)
	return nil
}

// SeedDefaults inserts the default categories when none exist yet and
// reports how many were inserted.
func (s *Service) SeedDefaults(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	now := s.now()
	seed := make([]Category, 0, len(Defaults))
	for _, d := range Defaults {
		seed = append(seed, Category{
			ID:           uuid.NewString(),
			Name:         d.Name,
			DisplayOrder: d.DisplayOrder,
			CreatedAt:    now,
		})
	}
	if err := s.repo.CreateMany(ctx, seed); err != nil {
		if errors.Is(err, ErrDuplicateName) {
			// another instance seeded concurrently
			return 0, nil
		}
		return 0, err
	}
	s.log.Info("default categories seeded", "count", len(seed))
	return len(seed), nil
}
