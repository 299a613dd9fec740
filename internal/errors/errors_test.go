package errors_test

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/flashdeck/internal/errors"
)

func TestAppError_Error(t *testing.T) {
	err := errors.NewNotFoundError("flashcard", 7)
	assert.Equal(t, "NOT_FOUND: flashcard not found: 7", err.Error())
	assert.Equal(t, http.StatusNotFound, err.Status)

	wrapped := errors.NewInternalError(stderrors.New("disk full"))
	assert.Equal(t, "INTERNAL_ERROR: internal server error (disk full)", wrapped.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("deck is empty")
	err := errors.NewConflictError(errors.ErrCodeEmptyDeck, "no cards to study", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusConflict, err.Status)

	var appErr *errors.AppError
	assert.True(t, stderrors.As(error(err), &appErr))
	assert.Equal(t, errors.ErrCodeEmptyDeck, appErr.Code)
}

func TestNewCorruptDeckError(t *testing.T) {
	err := errors.NewCorruptDeckError("7a", stderrors.New("bad json"))

	assert.Equal(t, errors.ErrCodeCorrupt, err.Code)
	assert.Contains(t, err.Message, `"7a"`)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
}

func TestNewValidationError(t *testing.T) {
	err := errors.NewValidationError("class_id", "is required")
	assert.Equal(t, "validation failed for class_id: is required", err.Message)
	assert.Equal(t, http.StatusBadRequest, err.Status)
}
