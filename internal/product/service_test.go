package product

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wichananm65/fresh-meat-hub/internal/apperr"
	"github.com/wichananm65/fresh-meat-hub/internal/logger"
)

func float(f float64) *float64 { return &f }
func str(s string) *string     { return &s }
func boolean(b bool) *bool     { return &b }

func TestServiceCreateAppliesDefaults(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil), logger.Discard())
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	p, err := svc.Create(context.Background(), CreateInput{Name: " Mutton Curry Cut ", Price: float(650), Category: "mutton"})
	require.NoError(t, err)

	assert.Equal(t, "Mutton Curry Cut", p.Name)
	assert.Equal(t, DefaultWeight, p.Weight)
	assert.True(t, p.InStock)
	assert.Nil(t, p.Image)
	assert.Equal(t, fixed, p.CreatedAt)
}

func TestServiceCreateKeepsExplicitFields(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil), logger.Discard())

	p, err := svc.Create(context.Background(), CreateInput{
		Name:        "Prawns",
		Price:       float(0),
		Category:    "others",
		Image:       str("data:image/png;base64,AAA"),
		InStock:     boolean(false),
		Weight:      str("1kg"),
		Description: str("cleaned"),
	})
	require.NoError(t, err)

	assert.Zero(t, p.Price)
	assert.False(t, p.InStock)
	assert.Equal(t, "1kg", p.Weight)
	assert.Equal(t, "cleaned", p.Description)
	require.NotNil(t, p.Image)
}

func TestServiceCreateValidation(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil), logger.Discard())
	cases := []struct {
		in     CreateInput
		detail string
	}{
		{CreateInput{Price: float(1), Category: "chicken"}, "Product name is required"},
		{CreateInput{Name: "Wings", Price: float(1)}, "Product category is required"},
		{CreateInput{Name: "Wings", Category: "chicken"}, "Product price is required"},
		{CreateInput{Name: "Wings", Category: "chicken", Price: float(-1)}, "Product price must not be negative"},
	}
	for _, tc := range cases {
		_, err := svc.Create(context.Background(), tc.in)
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.KindValidation))
		assert.Equal(t, tc.detail, apperr.Detail(err))
	}

	n, _ := svc.Count(context.Background())
	assert.Zero(t, n)
}

func TestServiceListFiltersExactCategory(t *testing.T) {
	svc := NewService(NewInMemoryRepository([]Product{
		{ID: "1", Name: "Breast", Category: "chicken"},
		{ID: "2", Name: "Legs", Category: "Chicken"},
		{ID: "3", Name: "Chops", Category: "mutton"},
	}), logger.Discard())
	ctx := context.Background()

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	chicken, err := svc.List(ctx, "chicken")
	require.NoError(t, err)
	require.Len(t, chicken, 1)
	assert.Equal(t, "Breast", chicken[0].Name)

	none, err := svc.List(ctx, "fish")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	n, _ := svc.CountByCategory(ctx, "chicken")
	assert.EqualValues(t, 1, n)
}

func TestServiceUpdateAndDelete(t *testing.T) {
	svc := NewService(NewInMemoryRepository([]Product{
		{ID: "1", Name: "Breast", Price: 250, Category: "chicken", InStock: true, Weight: "500g"},
	}), logger.Discard())
	ctx := context.Background()

	p, err := svc.Update(ctx, "1", Patch{Price: float(275), InStock: boolean(false)})
	require.NoError(t, err)
	assert.Equal(t, 275.0, p.Price)
	assert.False(t, p.InStock)
	assert.Equal(t, "Breast", p.Name)

	_, err = svc.Update(ctx, "1", Patch{})
	assert.Equal(t, "No update data provided", apperr.Detail(err))

	_, err = svc.Update(ctx, "1", Patch{Price: float(-5)})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.Update(ctx, "nope", Patch{Name: str("x")})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	require.NoError(t, svc.Delete(ctx, "1"))
	err = svc.Delete(ctx, "1")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, "Product not found", apperr.Detail(err))
}

func TestServiceUpdateTrimsNameAndCategory(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil), logger.Discard())
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateInput{Name: "  Lamb  ", Price: float(700), Category: " mutton "})
	require.NoError(t, err)
	assert.Equal(t, "mutton", p.Category)

	p, err = svc.Update(ctx, p.ID, Patch{Name: str("  Goat  "), Category: str(" mutton ")})
	require.NoError(t, err)
	assert.Equal(t, "Goat", p.Name)
	assert.Equal(t, "mutton", p.Category)

	n, err := svc.CountByCategory(ctx, "mutton")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	listed, _ := svc.List(ctx, "mutton")
	assert.Len(t, listed, 1)
}
