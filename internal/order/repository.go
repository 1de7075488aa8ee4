package order

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var ErrNotFound = errors.New("order not found")

type Repository interface {
	Create(ctx context.Context, o Order) (Order, error)
	// List returns every order, newest first.
	List(ctx context.Context) ([]Order, error)
	GetByID(ctx context.Context, id string) (Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) (Order, error)
	// Count counts orders in status, or all orders when status is empty.
	Count(ctx context.Context, status Status) (int64, error)
	// Revenue sums totalPrice over orders in status; zero when none match.
	Revenue(ctx context.Context, status Status) (float64, error)
}

// InMemoryRepository is used by tests and the memory store driver.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Order
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{storage: make([]Order, 0)}
}

func (r *InMemoryRepository) Create(ctx context.Context, o Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o = o.clone()
	r.storage = append(r.storage, o)
	return o.clone(), nil
}

func (r *InMemoryRepository) List(ctx context.Context) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, len(r.storage))
	for i, o := range r.storage {
		out[i] = o.clone()
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.storage {
		if o.ID == id {
			return o.clone(), nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) UpdateStatus(ctx context.Context, id string, status Status) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage[i].Status = status
			return r.storage[i].clone(), nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) Count(ctx context.Context, status Status) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, o := range r.storage {
		if status == "" || o.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *InMemoryRepository) Revenue(ctx context.Context, status Status) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var sum float64
	for _, o := range r.storage {
		if o.Status == status {
			sum += o.TotalPrice
		}
	}
	return sum, nil
}
