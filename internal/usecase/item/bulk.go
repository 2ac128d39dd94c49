package item

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/shop-api/internal/cache"
	"github.com/BruksfildServices01/shop-api/internal/changelog"
	domain "github.com/BruksfildServices01/shop-api/internal/domain/item"
	"github.com/BruksfildServices01/shop-api/internal/httperr"
	"github.com/BruksfildServices01/shop-api/internal/middleware"
)

// ======================================================
// INPUT
// ======================================================

type BulkInput struct {
	IDs     []string
	Action  domain.BulkAction
	Payload map[string]any
}

// ======================================================
// USE CASE
// ======================================================

type BulkItems struct {
	repo domain.Repository
	afterWrite
}

func NewBulkItems(
	repo domain.Repository,
	audit Recorder,
	catalog cache.Catalog,
	log logrus.FieldLogger,
) *BulkItems {
	return &BulkItems{
		repo:       repo,
		afterWrite: afterWrite{audit: audit, catalog: catalog, log: log},
	}
}

// Execute applies one action to many items and records a single
// changelog entry for the whole request. Deletion runs item by item and
// may stop part way; restore and status are one statement each.
func (uc *BulkItems) Execute(
	ctx context.Context,
	actor middleware.Identity,
	in BulkInput,
) (domain.BulkResult, error) {

	if len(in.IDs) == 0 {
		return nil, httperr.ErrBusiness("ids_required")
	}
	if !in.Action.Valid() {
		return nil, httperr.ErrBusiness("invalid_action")
	}

	var result domain.BulkResult

	switch in.Action {
	case domain.BulkDelete:
		live, err := uc.repo.FindLiveByIDs(ctx, in.IDs)
		if err != nil {
			return nil, err
		}

		var n int64
		for _, it := range live {
			if _, err := uc.repo.SoftDelete(ctx, it.ID, actor.Username); err != nil {
				uc.catalog.Invalidate(ctx)
				return nil, err
			}
			n++
		}
		result = domain.BulkResult{"deleted": n}

	case domain.BulkRestore:
		n, err := uc.repo.RestoreMany(ctx, in.IDs, actor.Username)
		if err != nil {
			return nil, err
		}
		result = domain.BulkResult{"restored": n}

	case domain.BulkStatus:
		raw, _ := in.Payload["status"].(string)
		status := domain.Status(raw)
		if !status.Valid() {
			return nil, httperr.ErrBusiness("invalid_status")
		}

		n, err := uc.repo.SetStatusMany(ctx, in.IDs, status, actor.Username)
		if err != nil {
			return nil, err
		}
		result = domain.BulkResult{"updated": n}
	}

	if err := uc.done(ctx, actor, changelog.ActionUpdate, nil, map[string]any{
		"bulk":    true,
		"action":  in.Action,
		"ids":     in.IDs,
		"payload": in.Payload,
	}); err != nil {
		return nil, err
	}

	return result, nil
}
