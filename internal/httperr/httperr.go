package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code   string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func Write(c *gin.Context, status int, code, detail string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Code:   code,
		Detail: detail,
	})
}

func BadRequest(c *gin.Context, code, detail string) {
	Write(c, http.StatusBadRequest, code, detail)
}

func Unauthorized(c *gin.Context, code, detail string) {
	Write(c, http.StatusUnauthorized, code, detail)
}

func Forbidden(c *gin.Context, code, detail string) {
	Write(c, http.StatusForbidden, code, detail)
}

func NotFound(c *gin.Context, code, detail string) {
	Write(c, http.StatusNotFound, code, detail)
}

func Conflict(c *gin.Context, code, detail string) {
	Write(c, http.StatusConflict, code, detail)
}

func Unavailable(c *gin.Context, code, detail string) {
	Write(c, http.StatusServiceUnavailable, code, detail)
}

func Internal(c *gin.Context, code, detail string) {
	Write(c, http.StatusInternalServerError, code, detail)
}
