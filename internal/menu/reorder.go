package menu

import (
	"context"

	"github.com/franciscosanchezn/gin-menu-api/internal/models"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// SetLogLevel adjusts the verbosity of the reorder logger
func SetLogLevel(level logrus.Level) {
	log.SetLevel(level)
}

// OrderWriter persists the display order of a single item
type OrderWriter interface {
	SetDisplayOrder(ctx context.Context, itemID string, order int) error
}

// OrderWriterFunc adapts a function to OrderWriter
type OrderWriterFunc func(ctx context.Context, itemID string, order int) error

func (f OrderWriterFunc) SetDisplayOrder(ctx context.Context, itemID string, order int) error {
	return f(ctx, itemID, order)
}

// IndexOf returns the position of itemID in items, or -1
func IndexOf(items []models.MenuItem, itemID string) int {
	for i, item := range items {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

// Move returns a copy of items with the element at from moved to to.
// Elements between the two positions shift by one; everything else keeps its place.
func Move(items []models.MenuItem, from, to int) []models.MenuItem {
	moved := make([]models.MenuItem, 0, len(items))
	moved = append(moved, items[:from]...)
	moved = append(moved, items[from+1:]...)

	item := items[from]
	moved = append(moved, models.MenuItem{})
	copy(moved[to+1:], moved[to:])
	moved[to] = item
	return moved
}

// Renumber sets every item's display order to its index
func Renumber(items []models.MenuItem) {
	for i := range items {
		items[i].DisplayOrder = i
	}
}

// Reorder moves itemID to targetIndex inside the ordered category list current, renumbers the
// whole category and persists the display order of every item through w.
//
// Dropping an item on its own position is a no-op and issues no writes. Writes are independent:
// a failing write does not stop the remaining ones and nothing is rolled back. The reordered list
// is returned together with a *ReorderError when any write failed.
func Reorder(ctx context.Context, w OrderWriter, category models.Category, current []models.MenuItem, itemID string, targetIndex int) ([]models.MenuItem, error) {
	from := IndexOf(current, itemID)
	if from == -1 {
		return nil, ErrItemNotInCategory
	}
	if targetIndex < 0 || targetIndex >= len(current) {
		return nil, ErrTargetOutOfRange
	}
	if from == targetIndex {
		return current, nil
	}

	reordered := Move(current, from, targetIndex)
	Renumber(reordered)

	var failed []ItemFailure
	for _, item := range reordered {
		if err := w.SetDisplayOrder(ctx, item.ID, item.DisplayOrder); err != nil {
			log.WithFields(logrus.Fields{
				"category": category,
				"item_id":  item.ID,
				"order":    item.DisplayOrder,
			}).WithError(err).Warn("Failed to persist display order")
			failed = append(failed, ItemFailure{ItemID: item.ID, Order: item.DisplayOrder, Err: err})
		}
	}

	log.WithFields(logrus.Fields{
		"category": category,
		"item_id":  itemID,
		"from":     from,
		"to":       targetIndex,
		"writes":   len(reordered),
		"failed":   len(failed),
	}).Debug("Reordered category")

	if len(failed) > 0 {
		return reordered, &ReorderError{Category: category, Failed: failed}
	}
	return reordered, nil
}
