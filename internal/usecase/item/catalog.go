package item

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/shop-api/internal/cache"
	domain "github.com/BruksfildServices01/shop-api/internal/domain/item"
	"github.com/BruksfildServices01/shop-api/internal/models"
)

// Catalog serves the public, read-only item views through the cache.
type Catalog struct {
	repo  domain.Repository
	cache cache.Catalog
}

func NewCatalog(repo domain.Repository, c cache.Catalog) *Catalog {
	return &Catalog{repo: repo, cache: c}
}

func (uc *Catalog) List(ctx context.Context, category string) ([]models.Item, error) {
	category = strings.TrimSpace(category)

	if items, ok := uc.cache.GetList(ctx, category); ok {
		return items, nil
	}

	gen, cacheable := uc.cache.Snapshot(ctx)

	items, err := uc.repo.ListCatalog(ctx, category)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Item{}
	}

	if cacheable {
		uc.cache.SetList(ctx, gen, category, items)
	}
	return items, nil
}

func (uc *Catalog) Get(ctx context.Context, id string) (*models.Item, error) {
	if it, ok := uc.cache.GetItem(ctx, id); ok {
		return it, nil
	}

	gen, cacheable := uc.cache.Snapshot(ctx)

	it, err := uc.repo.FindByID(ctx, id, false)
	if err != nil {
		return nil, err
	}

	if cacheable {
		uc.cache.SetItem(ctx, gen, it)
	}
	return it, nil
}
