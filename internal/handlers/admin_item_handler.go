package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	domain "github.com/BruksfildServices01/shop-api/internal/domain/item"
	"github.com/BruksfildServices01/shop-api/internal/dto"
	"github.com/BruksfildServices01/shop-api/internal/httperr"
	"github.com/BruksfildServices01/shop-api/internal/httpresp"
	"github.com/BruksfildServices01/shop-api/internal/middleware"
	ucItem "github.com/BruksfildServices01/shop-api/internal/usecase/item"
)

// ======================================================
// HANDLER
// ======================================================

type AdminItemHandler struct {
	list    *ucItem.ListItems
	create  *ucItem.CreateItem
	update  *ucItem.UpdateItem
	remove  *ucItem.DeleteItem
	restore *ucItem.RestoreItem
	bulk    *ucItem.BulkItems
	image   *ucItem.UploadImage
	log     logrus.FieldLogger
}

func NewAdminItemHandler(
	list *ucItem.ListItems,
	create *ucItem.CreateItem,
	update *ucItem.UpdateItem,
	remove *ucItem.DeleteItem,
	restore *ucItem.RestoreItem,
	bulk *ucItem.BulkItems,
	image *ucItem.UploadImage,
	log logrus.FieldLogger,
) *AdminItemHandler {
	return &AdminItemHandler{
		list:    list,
		create:  create,
		update:  update,
		remove:  remove,
		restore: restore,
		bulk:    bulk,
		image:   image,
		log:     log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateItemRequest struct {
	Name        string   `json:"name" binding:"required,notblank"`
	ImgSrc      string   `json:"imgSrc" binding:"required,notblank"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	IsNew       bool     `json:"isNew"`
	Gender      string   `json:"gender"`
	AgeGroup    string   `json:"ageGroup"`
	Status      string   `json:"status" binding:"omitempty,oneof=draft active archived"`
}

type BulkRequest struct {
	IDs     []string       `json:"ids" binding:"required,min=1,dive,notblank"`
	Action  string         `json:"action"`
	Payload map[string]any `json:"payload"`
}

// ======================================================
// HELPERS
// ======================================================

func truthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func parseItemQuery(c *gin.Context) domain.ListQuery {
	return domain.ListQuery{
		Term:           c.Query("q"),
		Name:           c.Query("search"),
		CreatedBy:      c.Query("createdBy"),
		Status:         strings.TrimSpace(c.Query("status")),
		Category:       strings.TrimSpace(c.Query("category")),
		Sort:           dto.ParseSort(c.Query("sort"), domain.SortColumns, domain.DefaultSortColumn),
		Page:           dto.ParsePage(c.Query("page"), c.Query("limit")),
		IncludeDeleted: truthy(c.Query("includeDeleted")),
	}
}

func actor(c *gin.Context) middleware.Identity {
	id, _ := middleware.IdentityFrom(c)
	return id
}

// ======================================================
// LIST
// ======================================================

func (h *AdminItemHandler) List(c *gin.Context) {
	page, err := h.list.Execute(c.Request.Context(), parseItemQuery(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.OK(c, page)
}

// ======================================================
// CREATE
// ======================================================

func (h *AdminItemHandler) Create(c *gin.Context) {
	var req CreateItemRequest
	if !bindJSON(c, &req) {
		return
	}

	it, err := h.create.Execute(c.Request.Context(), actor(c), ucItem.CreateItemInput{
		Name:        req.Name,
		ImgSrc:      req.ImgSrc,
		Price:       *req.Price,
		Description: req.Description,
		Category:    req.Category,
		IsNew:       req.IsNew,
		Gender:      req.Gender,
		AgeGroup:    req.AgeGroup,
		Status:      req.Status,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.Created(c, it)
}

// ======================================================
// UPDATE
// ======================================================

func (h *AdminItemHandler) Update(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	it, err := h.update.Execute(c.Request.Context(), actor(c), ucItem.UpdateItemInput{
		ID:   c.Param("id"),
		Body: body,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.OK(c, it)
}

// ======================================================
// DELETE / RESTORE
// ======================================================

func (h *AdminItemHandler) Delete(c *gin.Context) {
	force := truthy(c.Query("force"))

	it, err := h.remove.Execute(c.Request.Context(), actor(c), c.Param("id"), force)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	if force {
		httpresp.Done(c, gin.H{"hardDeleted": true, "id": it.ID})
		return
	}
	httpresp.OK(c, it)
}

func (h *AdminItemHandler) Restore(c *gin.Context) {
	it, err := h.restore.Execute(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.OK(c, it)
}

// ======================================================
// BULK
// ======================================================

func (h *AdminItemHandler) Bulk(c *gin.Context) {
	var req BulkRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.bulk.Execute(c.Request.Context(), actor(c), ucItem.BulkInput{
		IDs:     req.IDs,
		Action:  domain.BulkAction(req.Action),
		Payload: req.Payload,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.Done(c, gin.H{"result": result})
}

// ======================================================
// IMAGE
// ======================================================

func (h *AdminItemHandler) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "file_required", "")
		return
	}

	var expected *int
	if raw := strings.TrimSpace(c.PostForm("version")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_version", "")
			return
		}
		expected = &v
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "file_required", err.Error())
		return
	}
	defer f.Close()

	it, err := h.image.Execute(c.Request.Context(), actor(c), ucItem.UploadImageInput{
		ID:              c.Param("id"),
		File:            f,
		ExpectedVersion: expected,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.OK(c, it)
}
