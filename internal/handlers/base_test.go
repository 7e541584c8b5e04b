package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/abosaleg/enrollment-service/internal/auth"
	"github.com/abosaleg/enrollment-service/internal/repositories"
	"github.com/abosaleg/enrollment-service/internal/storage"
	"github.com/abosaleg/enrollment-service/internal/validator"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewBaseHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{
			name:   "validation errors",
			err:    validator.ValidationErrors{{Field: "email", Message: "invalid email", Rule: "email"}},
			status: http.StatusUnprocessableEntity,
		},
		{name: "invalid credentials", err: auth.ErrInvalidCredentials, status: http.StatusUnauthorized},
		{name: "duplicate email", err: repositories.ErrDuplicateEmail, status: http.StatusConflict},
		{name: "already enrolled", err: repositories.ErrAlreadyEnrolled, status: http.StatusConflict},
		{name: "user not found", err: repositories.ErrUserNotFound, status: http.StatusNotFound},
		{name: "not enrolled", err: repositories.ErrNotEnrolled, status: http.StatusNotFound},
		{name: "no session", err: auth.ErrSessionNotFound, status: http.StatusNotFound},
		{name: "file too large", err: storage.ErrFileTooLarge, status: http.StatusBadRequest},
		{name: "unsupported type", err: storage.ErrUnsupportedType, status: http.StatusBadRequest},
		{name: "unclassified", err: errors.New("connection reset"), status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			h.RespondError(c, tt.err)
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
		})
	}
}

func TestRespondErrorHidesInternalDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewBaseHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	h.RespondError(c, errors.New("dial tcp 10.0.0.5:5432: connection refused"))

	if strings.Contains(w.Body.String(), "10.0.0.5") {
		t.Error("internal error detail leaked into the response body")
	}
}
