package domain

import "strings"

// Product is a catalog entry. The price is in the minor currency unit.
// ID is zero until the product is persisted for the first time.
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
	Available   bool   `json:"available"`
}

// NewProduct creates an unpersisted, available product after checking its
// invariants. Name and category are trimmed.
func NewProduct(name, description string, price int64, category string) (*Product, error) {
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)

	if name == "" {
		return nil, NewValidationError("product name cannot be blank")
	}
	if price <= 0 {
		return nil, NewValidationError("product price must be positive")
	}
	if category == "" {
		return nil, NewValidationError("product category cannot be blank")
	}

	return &Product{
		Name:        name,
		Description: description,
		Price:       price,
		Category:    category,
		Available:   true,
	}, nil
}

// WithID returns a copy of the product carrying the given identity.
// Updates replace the whole value; only the identity is carried forward.
func (p Product) WithID(id int64) *Product {
	p.ID = id
	return &p
}
