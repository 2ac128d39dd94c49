package item

import (
	"context"

	domain "github.com/BruksfildServices01/shop-api/internal/domain/item"
	"github.com/BruksfildServices01/shop-api/internal/dto"
)

type ListItems struct {
	repo domain.Repository
}

func NewListItems(repo domain.Repository) *ListItems {
	return &ListItems{repo: repo}
}

func (uc *ListItems) Execute(ctx context.Context, q domain.ListQuery) (dto.ItemPage, error) {
	items, total, err := uc.repo.List(ctx, q)
	if err != nil {
		return dto.ItemPage{}, err
	}
	return dto.NewItemPage(items, q.Page, total), nil
}
