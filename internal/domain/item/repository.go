package item

import (
	"context"

	"github.com/BruksfildServices01/shop-api/internal/models"
)

type Repository interface {
	// -------- Read (live rows unless includeDeleted) --------
	FindByID(
		ctx context.Context,
		id string,
		includeDeleted bool,
	) (*models.Item, error)

	List(
		ctx context.Context,
		q ListQuery,
	) ([]models.Item, int64, error)

	ListCatalog(
		ctx context.Context,
		category string,
	) ([]models.Item, error)

	FindLiveByIDs(
		ctx context.Context,
		ids []string,
	) ([]models.Item, error)

	// -------- Write --------
	Create(
		ctx context.Context,
		it *models.Item,
	) error

	// Update applies set to a live item and bumps the version. A
	// soft-deleted or missing item is domain.ErrNotFound; a non-nil
	// expectedVersion turns a mismatch into domain.ErrVersionConflict.
	Update(
		ctx context.Context,
		id string,
		set map[string]any,
		expectedVersion *int,
	) (*models.Item, error)

	SoftDelete(
		ctx context.Context,
		id string,
		actor string,
	) (*models.Item, error)

	Restore(
		ctx context.Context,
		id string,
		actor string,
	) (*models.Item, error)

	HardDelete(
		ctx context.Context,
		id string,
	) (*models.Item, error)

	// -------- Bulk (rows actually modified) --------
	RestoreMany(
		ctx context.Context,
		ids []string,
		actor string,
	) (int64, error)

	SetStatusMany(
		ctx context.Context,
		ids []string,
		status Status,
		actor string,
	) (int64, error)

	// -------- Seeding --------
	ReplaceAll(
		ctx context.Context,
		items []models.Item,
	) (deleted int64, err error)
}
