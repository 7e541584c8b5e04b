package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abosaleg/enrollment-service/internal/auth"
	"github.com/abosaleg/enrollment-service/internal/repositories"
	"github.com/abosaleg/enrollment-service/internal/storage"
	"github.com/abosaleg/enrollment-service/internal/validator"
)

type ErrorResponse struct {
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

// BaseHandler carries the logger shared by every handler.
type BaseHandler struct {
	logger *slog.Logger
}

func NewBaseHandler(logger *slog.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// RespondError maps the core error taxonomy onto HTTP statuses. Unclassified
// failures are logged and surfaced as a generic message, never verbatim.
func (h BaseHandler) RespondError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: "validation failed",
			Errors:  validationErrs,
		})
		return
	}
	var validationErr validator.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: "validation failed",
			Errors:  validator.ValidationErrors{validationErr},
		})
		return
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: err.Error()})
	case repositories.IsConflictError(err):
		c.JSON(http.StatusConflict, ErrorResponse{Message: err.Error()})
	case repositories.IsNotFoundError(err), errors.Is(err, auth.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "resource not found"})
	case errors.Is(err, storage.ErrFileTooLarge), errors.Is(err, storage.ErrUnsupportedType):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
	default:
		h.logger.Error("request failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal server error"})
	}
}

func (h BaseHandler) RespondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request", Errors: err.Error()})
}
