// Package menu derives the category-grouped menu from a flat list of dishes and
// implements the drag-and-drop reorder of a category.
package menu

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/franciscosanchezn/gin-menu-api/internal/models"
)

// Section is one category of the menu with its items in display order
type Section struct {
	Category models.Category   `json:"category"`
	Items    []models.MenuItem `json:"items"`
}

// View is the grouped and sorted projection of an item list.
// Sections follow models.CanonicalCategories and are never empty.
type View struct {
	Sections []Section
}

// BuildView groups the finalized items by category and sorts every category by display order.
// The input slice is not modified.
func BuildView(items []models.MenuItem) View {
	grouped := make(map[models.Category][]models.MenuItem, len(models.CanonicalCategories))
	for _, item := range items {
		// Only finalized dishes (with images) are part of the menu
		if !item.IsFinalized() {
			continue
		}
		category := item.Category.Normalize()
		item.Category = category
		grouped[category] = append(grouped[category], item)
	}

	view := View{Sections: make([]Section, 0, len(grouped))}
	for _, category := range models.CanonicalCategories {
		sectionItems := grouped[category]
		if len(sectionItems) == 0 {
			continue
		}
		sort.SliceStable(sectionItems, func(i, j int) bool {
			return sectionItems[i].DisplayOrder < sectionItems[j].DisplayOrder
		})
		view.Sections = append(view.Sections, Section{Category: category, Items: sectionItems})
	}
	return view
}

// Len returns the total number of items in the view
func (v View) Len() int {
	n := 0
	for _, s := range v.Sections {
		n += len(s.Items)
	}
	return n
}

// Empty reports whether the view has no items
func (v View) Empty() bool {
	return v.Len() == 0
}

// Categories returns the non-empty categories in render order
func (v View) Categories() []models.Category {
	categories := make([]models.Category, 0, len(v.Sections))
	for _, s := range v.Sections {
		categories = append(categories, s.Category)
	}
	return categories
}

// Items returns the ordered items of a category, or nil when the category is not in the view
func (v View) Items(category models.Category) []models.MenuItem {
	for _, s := range v.Sections {
		if s.Category == category {
			return s.Items
		}
	}
	return nil
}

// MarshalJSON renders the view as an object keyed by category, keys in canonical order
func (v View) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range v.Sections {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(s.Category))
		if err != nil {
			return nil, err
		}
		items, err := json.Marshal(s.Items)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(items)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
