// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"yatra/internal/modules/aiquota"
	"yatra/internal/trip"
)

type errorResponse struct {
	Error string `json:"error"`
}

// isValidSessionID keeps session identifiers to simple alphanumeric tokens.
func isValidSessionID(v string) bool {
	if v == "" || len(v) > 64 {
		return false
	}
	for _, c := range v {
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '-' || c == '_' {
			continue
		}
		return false
	}
	return true
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writePlanError maps pipeline errors onto HTTP responses. Model-emitted
// sentinels keep their exact message so the caller sees the literal
// {"error": "Enter a valid source"} shape.
func writePlanError(c *gin.Context, err error) {
	var inputErr *trip.InputError
	var genErr *trip.GenerationError

	switch {
	case errors.As(err, &inputErr):
		writeError(c, http.StatusBadRequest, inputErr.Message)
	case errors.Is(err, aiquota.ErrQuotaExhausted):
		writeError(c, http.StatusTooManyRequests, err.Error())
	case errors.As(err, &genErr):
		writeError(c, http.StatusBadGateway, genErr.UserMessage())
	case errors.Is(err, trip.ErrEmptySource),
		errors.Is(err, trip.ErrNoDestinations),
		errors.Is(err, trip.ErrNonPositiveBudget):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
