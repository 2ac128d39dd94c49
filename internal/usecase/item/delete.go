package item

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/shop-api/internal/cache"
	"github.com/BruksfildServices01/shop-api/internal/changelog"
	domain "github.com/BruksfildServices01/shop-api/internal/domain/item"
	"github.com/BruksfildServices01/shop-api/internal/middleware"
	"github.com/BruksfildServices01/shop-api/internal/models"
)

type DeleteItem struct {
	repo domain.Repository
	afterWrite
}

func NewDeleteItem(
	repo domain.Repository,
	audit Recorder,
	catalog cache.Catalog,
	log logrus.FieldLogger,
) *DeleteItem {
	return &DeleteItem{
		repo:       repo,
		afterWrite: afterWrite{audit: audit, catalog: catalog, log: log},
	}
}

// Execute soft-deletes by default. Force removes the row for good; its
// changelog entries stay behind.
func (uc *DeleteItem) Execute(
	ctx context.Context,
	actor middleware.Identity,
	id string,
	force bool,
) (*models.Item, error) {

	if force {
		removed, err := uc.repo.HardDelete(ctx, id)
		if err != nil {
			return nil, err
		}

		if err := uc.done(ctx, actor, changelog.ActionDelete, changelog.Ref(id), map[string]any{
			"hard":   true,
			"before": removed,
		}); err != nil {
			return nil, err
		}
		return removed, nil
	}

	deleted, err := uc.repo.SoftDelete(ctx, id, actor.Username)
	if err != nil {
		return nil, err
	}

	if err := uc.done(ctx, actor, changelog.ActionDelete, changelog.Ref(id), map[string]any{
		"soft":      true,
		"deletedAt": deleted.DeletedAt,
		"deletedBy": deleted.DeletedBy,
	}); err != nil {
		return nil, err
	}

	return deleted, nil
}
