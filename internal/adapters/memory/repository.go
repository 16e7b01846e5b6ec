// Package memory provides an in-memory ProductRepository, used when no
// database is configured and by the service tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/NaoufalElmeskini/wlad-lwe9t-back/internal/domain"
)

// Repository implements domain.ProductRepository with an in-memory map.
type Repository struct {
	mu       sync.RWMutex
	products map[int64]domain.Product
	nextID   int64
}

// NewRepository creates an empty in-memory repository.
func NewRepository() *Repository {
	return &Repository{
		products: make(map[int64]domain.Product),
		nextID:   1,
	}
}

func (r *Repository) FindAll(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Product, 0, len(r.products))
	for id := range r.products {
		p := r.products[id]
		result = append(result, &p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *Repository) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (r *Repository) FindByCategory(_ context.Context, category string) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*domain.Product
	for id := range r.products {
		p := r.products[id]
		if strings.EqualFold(p.Category, category) {
			result = append(result, &p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved := *product
	if saved.ID == 0 {
		saved.ID = r.nextID
		r.nextID++
	}
	r.products[saved.ID] = saved
	return &saved, nil
}

func (r *Repository) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *Repository) ExistsByID(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.products[id]
	return ok, nil
}
