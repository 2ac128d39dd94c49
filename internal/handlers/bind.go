package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/shop-api/internal/httperr"
	"github.com/BruksfildServices01/shop-api/internal/validators"
)

// bindJSON decodes and validates the body into dst. On failure it writes
// a 400 with the field's error code, or invalid_request for malformed JSON.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	code, ok := validators.Code(err)
	if !ok {
		code = "invalid_request"
	}
	httperr.BadRequest(c, code, err.Error())
	return false
}
