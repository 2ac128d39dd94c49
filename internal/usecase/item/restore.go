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

type RestoreItem struct {
	repo domain.Repository
	afterWrite
}

func NewRestoreItem(
	repo domain.Repository,
	audit Recorder,
	catalog cache.Catalog,
	log logrus.FieldLogger,
) *RestoreItem {
	return &RestoreItem{
		repo:       repo,
		afterWrite: afterWrite{audit: audit, catalog: catalog, log: log},
	}
}

func (uc *RestoreItem) Execute(
	ctx context.Context,
	actor middleware.Identity,
	id string,
) (*models.Item, error) {

	restored, err := uc.repo.Restore(ctx, id, actor.Username)
	if err != nil {
		return nil, err
	}

	if err := uc.done(ctx, actor, changelog.ActionRestore, changelog.Ref(id), map[string]any{
		"restored": true,
	}); err != nil {
		return nil, err
	}

	return restored, nil
}
