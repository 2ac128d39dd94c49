package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	domain "github.com/BruksfildServices01/shop-api/internal/domain/order"
	"github.com/BruksfildServices01/shop-api/internal/dto"
	"github.com/BruksfildServices01/shop-api/internal/httperr"
	"github.com/BruksfildServices01/shop-api/internal/httpresp"
	"github.com/BruksfildServices01/shop-api/internal/timezone"
	ucOrder "github.com/BruksfildServices01/shop-api/internal/usecase/order"
)

type OrderHandler struct {
	checkout *ucOrder.Checkout
	list     *ucOrder.ListOrders
	log      logrus.FieldLogger
}

func NewOrderHandler(
	checkout *ucOrder.Checkout,
	list *ucOrder.ListOrders,
	log logrus.FieldLogger,
) *OrderHandler {
	return &OrderHandler{checkout: checkout, list: list, log: log}
}

// ======================================================
// REQUESTS
// ======================================================

type CheckoutLine struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"gte=0"`
	Qty   int     `json:"qty" binding:"min=1"`
}

type CheckoutRequest struct {
	Address  string         `json:"address"`
	Whatsapp string         `json:"whatsapp" binding:"omitempty,phone"`
	Items    []CheckoutLine `json:"items" binding:"required,min=1,dive"`
}

// ======================================================
// CHECKOUT
// ======================================================

func (h *OrderHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}

	lines := make([]domain.Line, 0, len(req.Items))
	for _, l := range req.Items {
		lines = append(lines, domain.Line{Name: l.Name, Price: l.Price, Qty: l.Qty})
	}

	res, err := h.checkout.Execute(c.Request.Context(), actor(c), ucOrder.CheckoutInput{
		Address:  req.Address,
		Whatsapp: req.Whatsapp,
		Items:    lines,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.OK(c, res)
}

// ======================================================
// ADMIN LIST
// ======================================================

func (h *OrderHandler) List(c *gin.Context) {
	from, to, err := timezone.DayRange(
		c.Query("from"),
		c.Query("to"),
		timezone.ParseOffset(c.Query("tzOffset")),
	)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Dates must be YYYY-MM-DD.")
		return
	}

	page, err := h.list.Execute(c.Request.Context(), domain.ListQuery{
		Term:     c.Query("q"),
		Username: c.Query("username"),
		Email:    c.Query("email"),
		Status:   strings.TrimSpace(c.Query("status")),
		From:     from,
		To:       to,
		Sort:     dto.ParseSort(c.Query("sort"), domain.SortColumns, domain.DefaultSortColumn),
		Page:     dto.ParsePage(c.Query("page"), c.Query("limit")),
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.OK(c, page)
}
