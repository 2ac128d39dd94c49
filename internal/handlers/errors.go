package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/shop-api/internal/domain"
	"github.com/BruksfildServices01/shop-api/internal/httperr"
	"github.com/BruksfildServices01/shop-api/internal/payment"
	ucAuth "github.com/BruksfildServices01/shop-api/internal/usecase/auth"
	ucItem "github.com/BruksfildServices01/shop-api/internal/usecase/item"
)

// writeError maps usecase errors onto the {error, detail} envelope.
func writeError(c *gin.Context, log logrus.FieldLogger, err error) {
	if code, ok := httperr.AsBusiness(err); ok {
		httperr.BadRequest(c, code, "")
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		httperr.NotFound(c, "not_found", "")
	case errors.Is(err, domain.ErrVersionConflict):
		httperr.Conflict(c, "version_conflict", "The record was changed by someone else.")
	case errors.Is(err, ucAuth.ErrUserNotFound):
		httperr.Unauthorized(c, "user_not_found", "")
	case errors.Is(err, ucAuth.ErrInvalidPassword):
		httperr.Unauthorized(c, "invalid_password", "")
	case errors.Is(err, ucItem.ErrImagesDisabled):
		httperr.Unavailable(c, "images_disabled", "Image storage is not configured.")
	case errors.Is(err, payment.ErrProvider):
		log.WithError(err).Error("payment provider")
		httperr.Internal(c, "payment_failed", err.Error())
	default:
		log.WithError(err).WithField("path", c.FullPath()).Error("unhandled error")
		httperr.Internal(c, "internal_error", err.Error())
	}
}
