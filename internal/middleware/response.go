package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/festy23/futamigo/internal/httpapi"
)

// Error codes produced by middleware before a handler runs.
const (
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeRateLimited  = "RATE_LIMITED"
)

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, httpapi.ErrorResponse{
		Error: httpapi.ErrorBody{Code: code, Message: message},
	})
}
