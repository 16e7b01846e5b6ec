package api

import (
	"errors"
	"net/http"

	"github.com/NaoufalElmeskini/wlad-lwe9t-back/internal/domain"
	"github.com/gin-gonic/gin"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

// handleServiceError maps domain errors to HTTP responses.
func handleServiceError(c *gin.Context, err error) {
	var paymentErr *domain.PaymentError
	if errors.As(err, &paymentErr) {
		statusCode := http.StatusInternalServerError

		switch {
		case errors.Is(paymentErr.Err, domain.ErrValidation):
			statusCode = http.StatusBadRequest
		case errors.Is(paymentErr.Err, domain.ErrStateConflict):
			statusCode = http.StatusConflict
		case errors.Is(paymentErr.Err, domain.ErrProviderProcessing):
			statusCode = http.StatusBadGateway
		}

		c.JSON(statusCode, ErrorResponse{
			Success: false,
			Error:   paymentErr.Message,
			Code:    paymentErr.Code,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Success: false,
		Error:   "Internal server error",
		Code:    "INTERNAL_ERROR",
	})
}
