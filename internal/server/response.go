package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"meal-planner/internal/apperr"
)

// errorBody is the error envelope every failure responds with.
type errorBody struct {
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindInvalidArgument:
		return http.StatusBadRequest
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError maps an application error to its HTTP status; anything
// unclassified becomes a 500 with a generic message.
func respondError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		c.JSON(statusFor(appErr.Kind), errorBody{Message: appErr.Message, Details: appErr.Details})
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, errorBody{Message: "Internal server error"})
}

// respondBindError wraps a JSON binding failure in the error envelope.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorBody{
		Message: "Validation error",
		Details: map[string]any{"error": err.Error()},
	})
}
