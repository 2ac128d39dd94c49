package order

import (
	"context"

	domain "github.com/BruksfildServices01/shop-api/internal/domain/order"
	"github.com/BruksfildServices01/shop-api/internal/dto"
)

type ListOrders struct {
	repo domain.Repository
}

func NewListOrders(repo domain.Repository) *ListOrders {
	return &ListOrders{repo: repo}
}

func (uc *ListOrders) Execute(ctx context.Context, q domain.ListQuery) (dto.OrderPage, error) {
	orders, total, err := uc.repo.List(ctx, q)
	if err != nil {
		return dto.OrderPage{}, err
	}
	return dto.NewOrderPage(orders, q.Page, total), nil
}
