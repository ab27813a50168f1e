// Package httpkit holds the gin response helpers and middleware shared by
// every handler package.
package httpkit

import (
	"errors"
	"net/http"

	"broker_portal_backend/platform/apperr"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the JSON shape of every error response the API emits.
type ErrorBody struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// JSON writes a payload with an explicit status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// OK writes the payload with a 200.
func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// Error writes an error body with an explicit status.
func Error(c *gin.Context, status int, message string, details any) {
	c.JSON(status, ErrorBody{Error: message, Details: details})
}

// HandleError maps a service error onto its HTTP response. Typed apperr
// errors carry their own status; anything untyped becomes a bad request so
// internals never leak a 500 by accident.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *apperr.Error
	if errors.As(err, &domainErr) {
		c.JSON(domainErr.HTTPStatus(), ErrorBody{Error: domainErr.Message, Details: domainErr.Details})
		return
	}
	c.JSON(http.StatusBadRequest, ErrorBody{Error: err.Error()})
}
