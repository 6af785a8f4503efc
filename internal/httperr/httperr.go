package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Message string `json:"error"`
	Code    string `json:"error_code"`
	Details string `json:"details,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

// InternalWithDetails is used by read paths, which expose the cause as a diagnostic string.
func InternalWithDetails(c *gin.Context, code, message string, err error) {
	body := HTTPError{Code: code, Message: message}
	if err != nil {
		body.Details = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}
