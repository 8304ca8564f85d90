package domain

import (
	"regexp"
	"strings"
	"time"
)

// AllCategoriesID is the pseudo category that aggregates every listing.
// It is part of the seed set so clients can render it, but products can't use it.
const AllCategoriesID = "all"

// DefaultCategoryColor is used when a category is created without a colour hint.
const DefaultCategoryColor = "bg-green-100 text-green-600"

var categoryIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Category groups products. ProductCount is maintained by the store alongside
// product writes and is never set directly by callers.
type Category struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Icon         string    `json:"icon"`
	ProductCount int64     `json:"product_count"`
	Color        string    `json:"color"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewCategory creates a category with a zero count.
func NewCategory(id, name, icon, color string) (*Category, error) {
	c := &Category{
		ID:        strings.TrimSpace(id),
		Name:      strings.TrimSpace(name),
		Icon:      strings.TrimSpace(icon),
		Color:     strings.TrimSpace(color),
		CreatedAt: time.Now().UTC(),
	}
	if c.Color == "" {
		c.Color = DefaultCategoryColor
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks if the Category has valid data.
func (c *Category) Validate() error {
	if err := checkLength("id", c.ID, 1, CategoryMaxLength); err != nil {
		return err
	}
	if !categoryIDPattern.MatchString(c.ID) {
		return NewValidationError("id", "must be lower case letters, digits, '-' or '_'", ErrInvalidID)
	}
	if err := checkLength("name", c.Name, 1, 50); err != nil {
		return err
	}
	return checkLength("icon", c.Icon, 1, 50)
}

// DefaultCategories returns the seed set inserted when the registry is first used.
func DefaultCategories() []*Category {
	now := time.Now().UTC()
	seed := []Category{
		{ID: AllCategoriesID, Name: "All Categories", Icon: "Grid3X3", Color: "bg-gray-100 text-gray-600"},
		{ID: "clothing", Name: "Clothing", Icon: "Shirt", Color: "bg-blue-100 text-blue-600"},
		{ID: "electronics", Name: "Electronics", Icon: "Smartphone", Color: "bg-purple-100 text-purple-600"},
		{ID: "furniture", Name: "Furniture", Icon: "Home", Color: "bg-orange-100 text-orange-600"},
		{ID: "home", Name: "Home & Garden", Icon: "TreePine", Color: "bg-green-100 text-green-600"},
		{ID: "sports", Name: "Sports & Fitness", Icon: "Dumbbell", Color: "bg-red-100 text-red-600"},
		{ID: "books", Name: "Books", Icon: "Book", Color: "bg-yellow-100 text-yellow-600"},
		{ID: "other", Name: "Other", Icon: "Package", Color: "bg-gray-100 text-gray-600"},
	}

	out := make([]*Category, len(seed))
	for i := range seed {
		c := seed[i]
		c.CreatedAt = now
		out[i] = &c
	}
	return out
}
