package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eliteroadways/internal/domain"
	"eliteroadways/internal/http/middleware"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
	reqID := middleware.GetRequestID(c)
	if reqID != "" {
		c.JSON(status, gin.H{
			"error":      resp.Error,
			"code":       resp.Code,
			"details":    resp.Details,
			"request_id": reqID,
		})
		return
	}
	c.JSON(status, resp)
}

// RespondDomainError maps domain errors to HTTP responses. Seat conflicts
// and validation failures keep their message so the client can retry with
// a different selection.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsSeatInvalid(err):
		respondError(c, http.StatusBadRequest, "seat_invalid", err.Error(), nil)
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "seat_already_booked", err.Error(), nil)
	case domain.IsNotAuthorized(err):
		respondError(c, http.StatusForbidden, "not_authorized", err.Error(), nil)
	case domain.IsUnavailable(err):
		respondError(c, http.StatusServiceUnavailable, "temporarily_unavailable", "service temporarily unavailable, please retry", nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}
