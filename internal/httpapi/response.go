// Package httpapi holds the response envelope shared by every handler.
package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error envelope returned by every endpoint.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries a stable machine code and a human message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes shared across modules.
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeNotFound       = "NOT_FOUND"
	CodeInternal       = "INTERNAL_ERROR"
)

// Error writes the error envelope.
func Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

// BadRequest writes a 400 INVALID_REQUEST.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CodeInvalidRequest, message)
}

// NotFound writes a 404 NOT_FOUND.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, CodeNotFound, message)
}

// Internal writes a 500 INTERNAL_ERROR.
func Internal(c *gin.Context) {
	Error(c, http.StatusInternalServerError, CodeInternal, "internal server error")
}

// ParseID reads a positive numeric path parameter. On failure it writes a 400
// and returns false.
func ParseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		BadRequest(c, param+" must be a positive integer")
		return 0, false
	}
	return uint(id), true
}
