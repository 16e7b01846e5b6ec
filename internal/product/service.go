// Package product implements the product catalog use cases.
package product

import (
	"context"
	"errors"
	"log"

	"github.com/NaoufalElmeskini/wlad-lwe9t-back/internal/domain"
)

// Service orchestrates product CRUD against the repository port.
// Absent products are reported structurally (nil result, false) rather than
// as errors; callers only see errors for actual failures.
type Service struct {
	repo domain.ProductRepository
}

// NewService creates a new product service.
func NewService(repo domain.ProductRepository) *Service {
	return &Service{repo: repo}
}

// GetAllProducts returns every product, unfiltered.
func (s *Service) GetAllProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.FindAll(ctx)
}

// GetProductByID returns (nil, nil) when the id does not exist.
func (s *Service) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, domain.ErrProductNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

// GetProductsByCategory returns the products matching the category,
// case-insensitively.
func (s *Service) GetProductsByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return s.repo.FindByCategory(ctx, category)
}

// CreateProduct persists a new product and returns it with its assigned identity.
func (s *Service) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, err
	}

	log.Printf("Created product %d (%s)", saved.ID, saved.Name)
	return saved, nil
}

// UpdateProduct replaces the product stored under id with the given value,
// keeping the identity. Returns (nil, nil) when id does not exist; no save
// is attempted in that case.
func (s *Service) UpdateProduct(ctx context.Context, id int64, updated *domain.Product) (*domain.Product, error) {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	return s.repo.Save(ctx, updated.WithID(id))
}

// DeleteProduct removes the product under id. Returns false when id does not
// exist; the delete is skipped in that case.
func (s *Service) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}
