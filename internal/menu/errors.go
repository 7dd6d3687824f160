package menu

import (
	"errors"
	"fmt"
	"strings"

	"github.com/franciscosanchezn/gin-menu-api/internal/models"
)

var (
	// ErrItemNotFound is returned by the store when no item matches the owner and id
	ErrItemNotFound = errors.New("menu item not found")
	// ErrItemNotInCategory is returned when a reorder names an item outside the category
	ErrItemNotInCategory = errors.New("menu item is not in category")
	// ErrTargetOutOfRange is returned when a reorder target index is outside the category
	ErrTargetOutOfRange = errors.New("target index out of range")
)

// DeletionError is returned when the store rejects a delete request
type DeletionError struct {
	ItemID string
	Err    error
}

func (e *DeletionError) Error() string {
	return fmt.Sprintf("delete menu item %s: %v", e.ItemID, e.Err)
}

func (e *DeletionError) Unwrap() error {
	return e.Err
}

// ItemFailure records a single display order write that failed during a reorder
type ItemFailure struct {
	ItemID string
	Order  int
	Err    error
}

// ReorderError is returned when one or more display order writes of a reorder failed.
// Writes that succeeded are not rolled back.
type ReorderError struct {
	Category models.Category
	Failed   []ItemFailure
}

func (e *ReorderError) Error() string {
	ids := make([]string, 0, len(e.Failed))
	for _, f := range e.Failed {
		ids = append(ids, f.ItemID)
	}
	return fmt.Sprintf("reorder %s: %d write(s) failed for items [%s]", e.Category, len(e.Failed), strings.Join(ids, ", "))
}

func (e *ReorderError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failed))
	for _, f := range e.Failed {
		errs = append(errs, f.Err)
	}
	return errs
}

// FailedIDs returns the ids of the items whose writes failed
func (e *ReorderError) FailedIDs() []string {
	ids := make([]string, 0, len(e.Failed))
	for _, f := range e.Failed {
		ids = append(ids, f.ItemID)
	}
	return ids
}
