package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	pkgerrors "github.com/yungbote/waltz-backend/internal/pkg/errors"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("grid 7: %w", pkgerrors.ErrNotFound), http.StatusNotFound, "not_found"},
		{fmt.Errorf("bad: %w", pkgerrors.ErrInvalidArgument), http.StatusBadRequest, "invalid_argument"},
		{pkgerrors.ErrAlreadyExists, http.StatusConflict, "already_exists"},
		{pkgerrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{pkgerrors.ErrUnsupported, http.StatusUnprocessableEntity, "unsupported"},
		{errors.New("boom"), http.StatusInternalServerError, "fallback"},
		{New(http.StatusTeapot, "teapot", nil), http.StatusTeapot, "teapot"},
	}
	for _, tt := range tests {
		got := FromError(tt.err, "fallback")
		if got == nil || got.Status != tt.status || got.Code != tt.code {
			t.Fatalf("FromError(%v) = %+v, want %d/%s", tt.err, got, tt.status, tt.code)
		}
	}
	if FromError(nil, "fallback") != nil {
		t.Fatalf("expected nil for nil error")
	}
}
