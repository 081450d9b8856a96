package response

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-gin-gorm-blog/internal/domain"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", domain.Validation("Validation failed"), http.StatusBadRequest, "Validation failed"},
		{"conflict is 400", domain.Conflict("taken"), http.StatusBadRequest, "taken"},
		{"unauthorized", domain.Unauthorized("Invalid token"), http.StatusUnauthorized, "Invalid token"},
		{"forbidden", domain.Forbidden("Author access required"), http.StatusForbidden, "Author access required"},
		{"not found", domain.NotFound("Blog not found"), http.StatusNotFound, "Blog not found"},
		{"internal keeps generic msg", domain.Internal("Failed to fetch blogs", errors.New("dial tcp: refused")), http.StatusInternalServerError, "Failed to fetch blogs"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, r := FromError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.status, r.Code)
			assert.Equal(t, tt.msg, r.Msg)
			assert.NotContains(t, r.Msg, "refused")
		})
	}
}

func TestFromError_FieldErrors(t *testing.T) {
	err := domain.Validation("Validation failed", domain.FieldError{Field: "body", Message: "too short"})
	_, r := FromError(err)
	data, ok := r.Data.(map[string]any)
	if assert.True(t, ok) {
		assert.Equal(t, []domain.FieldError{{Field: "body", Message: "too short"}}, data["errors"])
	}
}

func TestOK_NilData(t *testing.T) {
	r := OK(nil)
	assert.Equal(t, CodeOK, r.Code)
	assert.Equal(t, struct{}{}, r.Data)
}
