package item

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/shop-api/internal/cache"
	"github.com/BruksfildServices01/shop-api/internal/changelog"
	"github.com/BruksfildServices01/shop-api/internal/middleware"
	"github.com/BruksfildServices01/shop-api/internal/models"
)

type Recorder interface {
	Record(ctx context.Context, e changelog.Entry) error
}

// afterWrite is shared by every admin mutation: one changelog entry, then
// catalog invalidation. The cache is invalidated even when the changelog
// write fails since the entity write already happened.
type afterWrite struct {
	audit   Recorder
	catalog cache.Catalog
	log     logrus.FieldLogger
}

func (w afterWrite) done(
	ctx context.Context,
	actor middleware.Identity,
	action changelog.Action,
	refID *string,
	diff any,
) error {
	defer w.catalog.Invalidate(ctx)

	err := w.audit.Record(ctx, changelog.Entry{
		RefCollection: models.CollectionItems,
		RefID:         refID,
		Action:        action,
		User:          actor.Username,
		Diff:          diff,
	})
	if err != nil {
		w.log.WithError(err).WithFields(logrus.Fields{
			"action": action,
			"user":   actor.Username,
		}).Error("changelog write failed")
	}
	return err
}

func actorRef(actor middleware.Identity) *string {
	if actor.Username == "" {
		return nil
	}
	name := actor.Username
	return &name
}
