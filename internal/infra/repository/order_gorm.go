package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/shop-api/internal/domain/order"
	"github.com/BruksfildServices01/shop-api/internal/models"
)

type OrderGormRepository struct {
	orders *Gorm[models.Order]
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{orders: NewGorm[models.Order](db)}
}

var _ order.Repository = (*OrderGormRepository)(nil)

var orderTermColumns = []string{"username", "email", "address", "whatsapp", "status"}

func withLines(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	})
}

func orderSearchScopes(q order.ListQuery) []Scope {
	var scopes []Scope

	if term := strings.TrimSpace(q.Term); term != "" {
		pattern := "%" + strings.ToLower(term) + "%"

		conds := make([]string, 0, len(orderTermColumns))
		args := make([]any, 0, len(orderTermColumns))
		for _, col := range orderTermColumns {
			conds = append(conds, "LOWER("+col+") LIKE ?")
			args = append(args, pattern)
		}
		where := "(" + strings.Join(conds, " OR ") + ")"

		scopes = append(scopes, func(tx *gorm.DB) *gorm.DB {
			return tx.Where(where, args...)
		})
	} else {
		if username := strings.TrimSpace(q.Username); username != "" {
			scopes = append(scopes, likeLower("username", username))
		}
		if email := strings.TrimSpace(q.Email); email != "" {
			scopes = append(scopes, likeLower("email", email))
		}
	}

	if q.Status != "" {
		scopes = append(scopes, equals("status", q.Status))
	}

	// bounds are stored and compared in UTC
	if q.From != nil {
		scopes = append(scopes, createdFrom(q.From.UTC()))
	}
	if q.To != nil {
		scopes = append(scopes, createdBefore(q.To.UTC()))
	}

	return scopes
}

func (r *OrderGormRepository) Create(ctx context.Context, o *models.Order) error {
	return r.orders.Create(ctx, o)
}

func (r *OrderGormRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	return r.orders.FindByID(ctx, id, Query{Scopes: []Scope{withLines}})
}

func (r *OrderGormRepository) AttachPayment(
	ctx context.Context,
	id string,
	paymentURL string,
	invoiceID string,
) (*models.Order, error) {
	if _, err := r.orders.UpdateByID(ctx, id, Update{Set: map[string]any{
		"payment_url": paymentURL,
		"invoice_id":  invoiceID,
	}}); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *OrderGormRepository) List(
	ctx context.Context,
	q order.ListQuery,
) ([]models.Order, int64, error) {
	scopes := orderSearchScopes(q)

	total, err := r.orders.Count(ctx, Query{Scopes: scopes})
	if err != nil {
		return nil, 0, err
	}

	sort := q.Sort
	if sort.Column == "" {
		sort.Column = order.DefaultSortColumn
		sort.Desc = true
	}

	orders, err := r.orders.Find(ctx, Query{
		Scopes: append(scopes, withLines),
		Order:  sort.Clause() + ", id ASC",
		Offset: q.Page.Offset(),
		Limit:  q.Page.Limit,
	})
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}
