package apperror_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgehanKilicarslan/bookstore/internal/apperror"
)

func TestError_IsMatchesOnCode(t *testing.T) {
	custom := apperror.ErrResourceNotFound.WithMessage("Review not found.")

	assert.ErrorIs(t, custom, apperror.ErrResourceNotFound)
	assert.NotErrorIs(t, custom, apperror.ErrBookNotFound)
	assert.Equal(t, http.StatusNotFound, custom.Status)
	assert.Equal(t, "Review not found.", custom.Message)
	// The predefined value is untouched.
	assert.Equal(t, "Resource not found.", apperror.ErrResourceNotFound.Message)
}

func TestAs_ThroughWrapping(t *testing.T) {
	wrapped := apperror.Wrap(apperror.ErrConflict, "delete book")

	appErr, ok := apperror.As(wrapped)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", appErr.Code)

	_, ok = apperror.As(errors.New("plain"))
	assert.False(t, ok)
}

func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, apperror.Wrap(nil, "noop"))
	assert.NoError(t, apperror.Wrapf(nil, "noop %d", 1))
}

type signupPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Items    []struct {
		Quantity int `json:"quantity" binding:"gte=1"`
	} `json:"items" binding:"dive"`
}

func TestFromBinding_ValidationErrors(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")
	apperror.RegisterJSONTagNames(v)

	payload := signupPayload{Email: "nope", Password: "short"}
	payload.Items = append(payload.Items, struct {
		Quantity int `json:"quantity" binding:"gte=1"`
	}{Quantity: 0})

	appErr := apperror.FromBinding(v.Struct(payload))

	assert.ErrorIs(t, appErr, apperror.ErrValidation)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Status)
	assert.Equal(t, "value is not a valid email address", appErr.Details["email"])
	assert.Equal(t, "must be at least 8", appErr.Details["password"])
	assert.Equal(t, "must be greater than or equal to 1", appErr.Details["items[0].quantity"])
}

func TestFromBinding_MalformedJSON(t *testing.T) {
	var payload signupPayload
	err := binding.JSON.BindBody([]byte(`{"email":`), &payload)
	require.Error(t, err)

	appErr := apperror.FromBinding(err)
	assert.Equal(t, "VALIDATION_FAILED", appErr.Code)
	assert.NotEmpty(t, appErr.Details["body"])
}

func TestFromBinding_TypeMismatch(t *testing.T) {
	var payload signupPayload
	err := binding.JSON.BindBody([]byte(`{"email":42}`), &payload)
	require.Error(t, err)

	appErr := apperror.FromBinding(err)
	assert.Contains(t, appErr.Details["email"], "must be of type string")
}
