package services

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{NewInvalidError("bad"), http.StatusBadRequest},
		{NewUnauthorizedError("no"), http.StatusUnauthorized},
		{NewForbiddenError("denied"), http.StatusForbidden},
		{NewNotFoundError("missing"), http.StatusNotFound},
		{NewConflictError("taken"), http.StatusConflict},
		{NewTooManyRequestsError("slow down"), http.StatusTooManyRequests},
		{NewUnavailableError("down"), http.StatusServiceUnavailable},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.expected {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.expected)
		}
	}
}

func TestAsServiceError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", NewConflictError("taken"))
	se, ok := AsServiceError(wrapped)
	if !ok {
		t.Fatal("wrapped ServiceError not recognized")
	}
	if se.Code != ErrorConflict {
		t.Errorf("Code = %q, want %q", se.Code, ErrorConflict)
	}
}
