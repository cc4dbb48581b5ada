package apperr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrappedErrorsClassify(t *testing.T) {
	err := Conflict("You have already reviewed this game.")
	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrValidation)

	err = Validation("Game ID is required")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMessageStripsSentinelPrefix(t *testing.T) {
	assert.Equal(t, "You have already reviewed this game.",
		Message(Conflict("You have already reviewed this game.")))
	assert.Equal(t, "Game ID is required", Message(Validation("Game ID is required")))
}

func TestMessagePassesThroughForeignErrors(t *testing.T) {
	err := errors.New("connection reset")
	assert.Equal(t, "connection reset", Message(err))
}

func TestMessageBareSentinel(t *testing.T) {
	assert.Equal(t, "not found", Message(ErrNotFound))
}
