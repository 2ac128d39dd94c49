package dto

import "github.com/BruksfildServices01/shop-api/internal/models"

type ItemPage struct {
	Items []models.Item `json:"items"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
	Total int64         `json:"total"`
	Pages int           `json:"pages"`
}

type OrderPage struct {
	Orders []models.Order `json:"orders"`
	Page   int            `json:"page"`
	Limit  int            `json:"limit"`
	Total  int64          `json:"total"`
	Pages  int            `json:"pages"`
}

type ChangeLogPage struct {
	Logs  []models.ChangeLog `json:"logs"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
	Total int64              `json:"total"`
	Pages int                `json:"pages"`
}

func NewItemPage(items []models.Item, p Page, total int64) ItemPage {
	if items == nil {
		items = []models.Item{}
	}
	return ItemPage{Items: items, Page: p.Number, Limit: p.Limit, Total: total, Pages: p.Pages(total)}
}

func NewOrderPage(orders []models.Order, p Page, total int64) OrderPage {
	if orders == nil {
		orders = []models.Order{}
	}
	return OrderPage{Orders: orders, Page: p.Number, Limit: p.Limit, Total: total, Pages: p.Pages(total)}
}

func NewChangeLogPage(logs []models.ChangeLog, p Page, total int64) ChangeLogPage {
	if logs == nil {
		logs = []models.ChangeLog{}
	}
	return ChangeLogPage{Logs: logs, Page: p.Number, Limit: p.Limit, Total: total, Pages: p.Pages(total)}
}
