package httpserver

import (
	"errors"
	"net/http"

	"marketplace-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// apiResponse is the envelope every endpoint replies with.
type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, apiResponse{Success: true, Message: message, Data: data})
}

func respondFail(c *gin.Context, status int, message string) {
	c.JSON(status, apiResponse{Success: false, Message: message})
}

// respondError maps the domain error taxonomy onto HTTP status classes:
// validation 400, not found 404, OTP mismatch 401, anything else 500.
func respondError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondFail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		respondFail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidOTP):
		respondFail(c, http.StatusUnauthorized, "Invalid OTP")
	default:
		respondFail(c, http.StatusInternalServerError, "Server error")
	}
}
