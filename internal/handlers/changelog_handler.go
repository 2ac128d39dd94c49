package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/shop-api/internal/changelog"
	"github.com/BruksfildServices01/shop-api/internal/dto"
	"github.com/BruksfildServices01/shop-api/internal/httpresp"
)

type ChangeLogHandler struct {
	recorder *changelog.Recorder
	log      logrus.FieldLogger
}

func NewChangeLogHandler(recorder *changelog.Recorder, log logrus.FieldLogger) *ChangeLogHandler {
	return &ChangeLogHandler{recorder: recorder, log: log}
}

func (h *ChangeLogHandler) List(c *gin.Context) {
	f := changelog.Filter{
		RefCollection: c.Query("refCollection"),
		RefID:         c.Query("refId"),
		Action:        c.Query("action"),
		User:          c.Query("user"),
		Page:          dto.ParsePage(c.Query("page"), c.Query("limit")),
	}

	logs, total, err := h.recorder.List(c.Request.Context(), f)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.NewChangeLogPage(logs, f.Page, total))
}
