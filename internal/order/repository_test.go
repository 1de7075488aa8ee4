package order

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryReadsDoNotShareItems(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, Order{
		ID:        "o1",
		Items:     []Item{{ProductID: "p1", ProductName: "Chicken Breast", Quantity: 1, Price: 250}},
		Status:    StatusPending,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	list[0].Items[0].ProductName = "mutated"

	got, err := repo.GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, "Chicken Breast", got.Items[0].ProductName)

	got.Items[0].Quantity = 99
	updated, err := repo.UpdateStatus(ctx, "o1", StatusPacked)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Items[0].Quantity)

	updated.Items[0].Price = 1
	again, _ := repo.GetByID(ctx, "o1")
	assert.Equal(t, 250.0, again.Items[0].Price)
}
