package apperr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindMatching(t *testing.T) {
	err := fmt.Errorf("approve: %w", Conflicts("document is no longer pending"))

	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, Conflict, KindOf(err))
	assert.Equal(t, "approve: document is no longer pending", err.Error())
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, Internal, KindOf(fmt.Errorf("boom")))
	assert.Equal(t, "internal", KindOf(nil).String())
}
