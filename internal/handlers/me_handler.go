package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/shop-api/internal/httperr"
	"github.com/BruksfildServices01/shop-api/internal/httpresp"
	"github.com/BruksfildServices01/shop-api/internal/middleware"
	"github.com/BruksfildServices01/shop-api/internal/models"
)

type UserReader interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type MeHandler struct {
	users UserReader
	log   logrus.FieldLogger
}

func NewMeHandler(users UserReader, log logrus.FieldLogger) *MeHandler {
	return &MeHandler{users: users, log: log}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		httperr.Unauthorized(c, "user_not_in_context", "")
		return
	}

	u, err := h.users.FindByID(c.Request.Context(), id.UserID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, gin.H{"user": userView(u)})
}
