package handler

import (
	"errors"
	"net/http"

	"rollingpaper/internal/service"

	"github.com/gin-gonic/gin"
)

// ErrorResponse documents the {"error": "..."} body every failure returns.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps a service error kind onto a status code.
// Store failures are reported generically; the cause goes to the request log.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := "Internal server error"

	switch {
	case errors.Is(err, service.ErrValidation):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrNotFound):
		status, msg = http.StatusNotFound, "Not found"
	case errors.Is(err, service.ErrConflict):
		status, msg = http.StatusConflict, "Board id already exists"
	case errors.Is(err, service.ErrAuth):
		status, msg = http.StatusUnauthorized, "Invalid identity token"
	case errors.Is(err, service.ErrUnauthenticated):
		status, msg = http.StatusUnauthorized, "Not authenticated"
	case errors.Is(err, service.ErrForbidden):
		status, msg = http.StatusForbidden, "You don't have permission to do this"
	case errors.Is(err, service.ErrAccessDenied):
		status, msg = http.StatusForbidden, "Board password required"
	}

	_ = c.Error(err)
	c.JSON(status, gin.H{"error": msg})
}
