package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/shop-api/internal/httpresp"
	ucItem "github.com/BruksfildServices01/shop-api/internal/usecase/item"
)

// ItemHandler serves the public catalog.
type ItemHandler struct {
	catalog *ucItem.Catalog
	log     logrus.FieldLogger
}

func NewItemHandler(catalog *ucItem.Catalog, log logrus.FieldLogger) *ItemHandler {
	return &ItemHandler{catalog: catalog, log: log}
}

// List returns a bare array of live items.
func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.catalog.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.OK(c, items)
}

func (h *ItemHandler) Get(c *gin.Context) {
	it, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.OK(c, it)
}
