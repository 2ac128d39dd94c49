package item

import "github.com/BruksfildServices01/shop-api/internal/dto"

// ListQuery drives the admin item search. A non-empty Term takes
// precedence over Name and CreatedBy.
type ListQuery struct {
	Term      string
	Name      string
	CreatedBy string
	Status    string
	Category  string

	Sort dto.Sort
	Page dto.Page

	IncludeDeleted bool
}

// SortColumns maps accepted sort fields to columns.
var SortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"name":      "name",
	"price":     "price",
	"version":   "version",
	"status":    "status",
	"category":  "category",
}

const DefaultSortColumn = "created_at"
