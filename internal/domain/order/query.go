package order

import (
	"time"

	"github.com/BruksfildServices01/shop-api/internal/dto"
)

// ListQuery drives the admin order search. A non-empty Term takes
// precedence over Username and Email.
type ListQuery struct {
	Term     string
	Username string
	Email    string
	Status   string

	// From is inclusive, To exclusive; both absolute instants.
	From *time.Time
	To   *time.Time

	Sort dto.Sort
	Page dto.Page
}

var SortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"total":     "total",
	"status":    "status",
	"username":  "username",
}

const DefaultSortColumn = "created_at"
