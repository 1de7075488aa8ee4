package product

import "time"

// DefaultWeight is the label given to products created without one.
const DefaultWeight = "500g"

// Product is a catalog entry. Category holds a category name, not an id, and
// is matched exactly when filtering.
type Product struct {
	ID          string    `json:"id" bson:"id"`
	Name        string    `json:"name" bson:"name"`
	Price       float64   `json:"price" bson:"price"`
	Category    string    `json:"category" bson:"category"`
	Image       *string   `json:"image" bson:"image"`
	InStock     bool      `json:"inStock" bson:"inStock"`
	Weight      string    `json:"weight" bson:"weight"`
	Description string    `json:"description" bson:"description"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// CreateInput is the admin payload for a new product. Pointer fields are
// optional and fall back to defaults.
type CreateInput struct {
	Name        string   `json:"name"`
	Price       *float64 `json:"price"`
	Category    string   `json:"category"`
	Image       *string  `json:"image"`
	InStock     *bool    `json:"inStock"`
	Weight      *string  `json:"weight"`
	Description *string  `json:"description"`
}

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Image       *string  `json:"image"`
	InStock     *bool    `json:"inStock"`
	Weight      *string  `json:"weight"`
	Description *string  `json:"description"`
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Price == nil && p.Category == nil && p.Image == nil &&
		p.InStock == nil && p.Weight == nil && p.Description == nil
}

func (p Patch) apply(dst *Product) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Price != nil {
		dst.Price = *p.Price
	}
	if p.Category != nil {
		dst.Category = *p.Category
	}
	if p.Image != nil {
		img := *p.Image
		dst.Image = &img
	}
	if p.InStock != nil {
		dst.InStock = *p.InStock
	}
	if p.Weight != nil {
		dst.Weight = *p.Weight
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
}
