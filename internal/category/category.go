package category

import (
	"strings"
	"time"
)

// Category groups products on the storefront. Name is stored lowercased and
// is unique.
type Category struct {
	ID           string    `json:"id" bson:"id"`
	Name         string    `json:"name" bson:"name"`
	DisplayOrder int       `json:"displayOrder" bson:"displayOrder"`
	CoverImage   *string   `json:"coverImage" bson:"coverImage"`
	Description  string    `json:"description" bson:"description"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// CreateInput is the admin payload for a new category.
type CreateInput struct {
	Name         string  `json:"name"`
	DisplayOrder *int    `json:"displayOrder"`
	CoverImage   *string `json:"coverImage"`
	Description  *string `json:"description"`
}

// Patch is a partial update. A nil field, whether the key was absent or
// sent as null, leaves the stored value unchanged.
type Patch struct {
	Name         *string `json:"name"`
	DisplayOrder *int    `json:"displayOrder"`
	CoverImage   *string `json:"coverImage"`
	Description  *string `json:"description"`
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.DisplayOrder == nil && p.CoverImage == nil && p.Description == nil
}

func (p Patch) apply(c *Category) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.DisplayOrder != nil {
		c.DisplayOrder = *p.DisplayOrder
	}
	if p.CoverImage != nil {
		img := *p.CoverImage
		c.CoverImage = &img
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
}

// NormalizeName is the canonical stored form of a category name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Defaults are seeded into an empty categories collection.
var Defaults = []struct {
	Name         string
	DisplayOrder int
}{
	{"chicken", 1},
	{"mutton", 2},
	{"others", 3},
}
