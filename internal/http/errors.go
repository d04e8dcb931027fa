package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"recipe-box/internal/repository"
	"recipe-box/internal/service"
)

// errorResponse maps the error taxonomy to HTTP statuses: field-scoped
// validation failures and bad credentials are 400, missing/invalid tokens
// 401, unknown or foreign rows 404, everything else 500.
func errorResponse(err error) (int, gin.H) {
	if verr, ok := service.AsValidationError(err); ok {
		return http.StatusBadRequest, gin.H{"errors": verr.Fields}
	}
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		// generic message so unknown email and wrong password are indistinguishable
		return http.StatusBadRequest, gin.H{"error": "unable to authenticate with provided credentials"}
	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, gin.H{"error": "invalid token"}
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, gin.H{"error": "not found"}
	default:
		return http.StatusInternalServerError, gin.H{"error": "internal error"}
	}
}
