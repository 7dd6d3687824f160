package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is the menu section a dish is listed under
type Category string

const (
	CategoryAppetizers Category = "Appetizers"
	CategorySoups      Category = "Soups"
	CategorySalads     Category = "Salads"
	CategoryMains      Category = "Mains"
	CategorySides      Category = "Sides"
	CategoryDesserts   Category = "Desserts"
	CategoryBeverages  Category = "Beverages"
)

// CanonicalCategories is the fixed order in which categories are rendered and exported.
var CanonicalCategories = []Category{
	CategoryAppetizers,
	CategorySoups,
	CategorySalads,
	CategoryMains,
	CategorySides,
	CategoryDesserts,
	CategoryBeverages,
}

// DefaultCategory is used for dishes with an unset or unknown category
const DefaultCategory = CategoryMains

// Valid reports whether c is one of the canonical categories
func (c Category) Valid() bool {
	for _, known := range CanonicalCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Normalize returns c, or DefaultCategory when c is empty or unrecognized
func (c Category) Normalize() Category {
	if c.Valid() {
		return c
	}
	return DefaultCategory
}

// DietaryOption is a dietary tag that can be attached to a dish
type DietaryOption string

const (
	DietaryVegetarian DietaryOption = "Vegetarian"
	DietaryVegan      DietaryOption = "Vegan"
	DietaryGlutenFree DietaryOption = "Gluten-Free"
	DietaryDairyFree  DietaryOption = "Dairy-Free"
	DietaryNutFree    DietaryOption = "Nut-Free"
	DietarySpicy      DietaryOption = "Spicy"
)

var dietaryOptions = map[DietaryOption]bool{
	DietaryVegetarian: true,
	DietaryVegan:      true,
	DietaryGlutenFree: true,
	DietaryDairyFree:  true,
	DietaryNutFree:    true,
	DietarySpicy:      true,
}

// Valid reports whether d is a known dietary option
func (d DietaryOption) Valid() bool {
	return dietaryOptions[d]
}

// NormalizeDietary turns a list of tags into a set: unknown tags and duplicates are dropped,
// first occurrence order is kept.
func NormalizeDietary(tags []DietaryOption) []DietaryOption {
	seen := make(map[DietaryOption]bool, len(tags))
	out := make([]DietaryOption, 0, len(tags))
	for _, tag := range tags {
		if !tag.Valid() || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

// MenuItem represents a dish owned by a restaurant user
type MenuItem struct {
	ID              string              `json:"id" gorm:"primaryKey;size:36"`
	OwnerID         uint                `json:"ownerId" gorm:"index;not null"`
	Name            string              `json:"name" gorm:"not null"`
	Price           decimal.NullDecimal `json:"price" gorm:"type:decimal(10,2)" swaggertype:"string"`
	Description     string              `json:"description,omitempty"`
	Category        Category            `json:"category" gorm:"index;size:32"`
	DietaryInfo     []DietaryOption     `json:"dietaryInfo" gorm:"type:text;serializer:json"`
	GeneratedImages []string            `json:"generatedImages" gorm:"type:text;serializer:json"`
	DisplayOrder    int                 `json:"displayOrder" gorm:"default:0"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

func (MenuItem) TableName() string {
	return "menu_items"
}

// IsFinalized reports whether the dish has at least one generated image
func (m MenuItem) IsFinalized() bool {
	return len(m.GeneratedImages) > 0
}

// ItemPatch carries the fields of a partial update; nil fields are left untouched
type ItemPatch struct {
	Name            *string          `json:"name,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty" swaggertype:"string"`
	ClearPrice      bool             `json:"clearPrice,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Category        *Category        `json:"category,omitempty"`
	DietaryInfo     *[]DietaryOption `json:"dietaryInfo,omitempty"`
	GeneratedImages *[]string        `json:"generatedImages,omitempty"`
	DisplayOrder    *int             `json:"displayOrder,omitempty"`
}

// Empty reports whether the patch changes nothing
func (p ItemPatch) Empty() bool {
	return p.Name == nil && p.Price == nil && !p.ClearPrice && p.Description == nil &&
		p.Category == nil && p.DietaryInfo == nil && p.GeneratedImages == nil && p.DisplayOrder == nil
}
