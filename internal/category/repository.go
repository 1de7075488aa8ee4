package category

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var (
	ErrNotFound      = errors.New("category not found")
	ErrDuplicateName = errors.New("category name already exists")
)

// Repository persists categories. Create and Update must reject a duplicate
// name atomically with ErrDuplicateName.
type Repository interface {
	List(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, id string) (Category, error)
	Create(ctx context.Context, c Category) (Category, error)
	CreateMany(ctx context.Context, cs []Category) error
	Update(ctx context.Context, id string, p Patch) (Category, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// InMemoryRepository is a simple in-memory implementation useful for tests and
// the memory store driver.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Category
}

func NewInMemoryRepository(seed []Category) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Category, 0, len(seed))}
	r.storage = append(r.storage, seed...)
	return r
}

func (r *InMemoryRepository) List(ctx context.Context) ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Category, len(r.storage))
	copy(out, r.storage)
	sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return r.storage[i], nil
	}
	return Category{}, ErrNotFound
}

func (r *InMemoryRepository) Create(ctx context.Context, c Category) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nameTaken(c.Name, "") {
		return Category{}, ErrDuplicateName
	}
	r.storage = append(r.storage, c)
	return c, nil
}

func (r *InMemoryRepository) CreateMany(ctx context.Context, cs []Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range cs {
		if r.nameTaken(c.Name, "") {
			return ErrDuplicateName
		}
	}
	r.storage = append(r.storage, cs...)
	return nil
}

func (r *InMemoryRepository) Update(ctx context.Context, id string, p Patch) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return Category{}, ErrNotFound
	}
	if p.Name != nil && r.nameTaken(*p.Name, id) {
		return Category{}, ErrDuplicateName
	}
	p.apply(&r.storage[i])
	return r.storage[i], nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	r.storage = append(r.storage[:i], r.storage[i+1:]...)
	return nil
}

func (r *InMemoryRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.storage)), nil
}

func (r *InMemoryRepository) indexOf(id string) int {
	for i := range r.storage {
		if r.storage[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *InMemoryRepository) nameTaken(name, exceptID string) bool {
	for _, c := range r.storage {
		if c.Name == name && c.ID != exceptID {
			return true
		}
	}
	return false
}
