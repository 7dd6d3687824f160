package menu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeletionErrorUnwrap(t *testing.T) {
	err := error(&DeletionError{ItemID: "abc", Err: ErrItemNotFound})

	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.Equal(t, "delete menu item abc: menu item not found", err.Error())

	var deletionErr *DeletionError
	assert.True(t, errors.As(err, &deletionErr))
	assert.Equal(t, "abc", deletionErr.ItemID)
}
