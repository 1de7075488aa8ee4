package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{Conflict("dup"), http.StatusBadRequest},
		{NotFound("missing"), http.StatusNotFound},
		{Auth("nope"), http.StatusUnauthorized},
		{Storage(errors.New("socket closed")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(tc.err), tc.err.Error())
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("create category: %w", Conflict("Category already exists"))
	assert.True(t, Is(err, KindConflict))
	assert.Equal(t, "Category already exists", Detail(err))
}

func TestStorageDetailIsGeneric(t *testing.T) {
	cause := errors.New("connection refused")
	err := Storage(cause)

	assert.Equal(t, "Internal server error", Detail(err))
	assert.ErrorIs(t, err, cause)
	assert.Same(t, err, Storage(err))
	assert.Nil(t, Storage(nil))
}
