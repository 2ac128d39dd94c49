package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/shop-api/internal/domain/item"
	"github.com/BruksfildServices01/shop-api/internal/models"
)

type ItemGormRepository struct {
	db    *gorm.DB
	items *Versioned[models.Item]
}

func NewItemGormRepository(db *gorm.DB) *ItemGormRepository {
	return &ItemGormRepository{
		db:    db,
		items: NewVersioned[models.Item](NewGorm[models.Item](db)),
	}
}

var (
	_ item.Repository         = (*ItemGormRepository)(nil)
	_ Repository[models.Item] = (*Versioned[models.Item])(nil)
)

// ======================================================
// SCOPES
// ======================================================

func itemSearchScopes(q item.ListQuery) []Scope {
	var scopes []Scope

	if term := strings.TrimSpace(q.Term); term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		scopes = append(scopes, func(tx *gorm.DB) *gorm.DB {
			return tx.Where("(LOWER(name) LIKE ? OR LOWER(created_by) LIKE ?)", pattern, pattern)
		})
	} else {
		if name := strings.TrimSpace(q.Name); name != "" {
			scopes = append(scopes, likeLower("name", name))
		}
		if by := strings.TrimSpace(q.CreatedBy); by != "" {
			scopes = append(scopes, likeLower("created_by", by))
		}
	}

	if q.Status != "" {
		scopes = append(scopes, equals("status", q.Status))
	}
	if q.Category != "" {
		scopes = append(scopes, equals("category", q.Category))
	}

	return scopes
}

// ======================================================
// READ
// ======================================================

func (r *ItemGormRepository) FindByID(
	ctx context.Context,
	id string,
	includeDeleted bool,
) (*models.Item, error) {
	return r.items.FindByID(ctx, id, Query{IncludeDeleted: includeDeleted})
}

func (r *ItemGormRepository) List(
	ctx context.Context,
	q item.ListQuery,
) ([]models.Item, int64, error) {
	scopes := itemSearchScopes(q)

	total, err := r.items.Count(ctx, Query{
		Scopes:         scopes,
		IncludeDeleted: q.IncludeDeleted,
	})
	if err != nil {
		return nil, 0, err
	}

	sort := q.Sort
	if sort.Column == "" {
		sort.Column = item.DefaultSortColumn
		sort.Desc = true
	}

	items, err := r.items.Find(ctx, Query{
		Scopes:         scopes,
		Order:          sort.Clause() + ", id ASC",
		Offset:         q.Page.Offset(),
		Limit:          q.Page.Limit,
		IncludeDeleted: q.IncludeDeleted,
	})
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *ItemGormRepository) ListCatalog(
	ctx context.Context,
	category string,
) ([]models.Item, error) {
	var scopes []Scope
	if category != "" {
		scopes = append(scopes, equals("category", category))
	}

	return r.items.Find(ctx, Query{
		Scopes: scopes,
		Order:  "created_at ASC, id ASC",
	})
}

func (r *ItemGormRepository) FindLiveByIDs(
	ctx context.Context,
	ids []string,
) ([]models.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.items.Find(ctx, Query{Scopes: []Scope{idIn(ids)}})
}

// ======================================================
// WRITE
// ======================================================

func (r *ItemGormRepository) Create(ctx context.Context, it *models.Item) error {
	return r.items.Create(ctx, it)
}

func (r *ItemGormRepository) Update(
	ctx context.Context,
	id string,
	set map[string]any,
	expectedVersion *int,
) (*models.Item, error) {
	return r.items.UpdateLive(ctx, id, Update{
		Set:             set,
		ExpectedVersion: expectedVersion,
	})
}

func (r *ItemGormRepository) SoftDelete(ctx context.Context, id, actor string) (*models.Item, error) {
	return r.items.SoftDelete(ctx, id, actor)
}

func (r *ItemGormRepository) Restore(ctx context.Context, id, actor string) (*models.Item, error) {
	return r.items.Restore(ctx, id, actor)
}

func (r *ItemGormRepository) HardDelete(ctx context.Context, id string) (*models.Item, error) {
	return r.items.HardDelete(ctx, id)
}

// ======================================================
// BULK
// ======================================================

func (r *ItemGormRepository) RestoreMany(
	ctx context.Context,
	ids []string,
	actor string,
) (int64, error) {
	return r.items.UpdateMany(ctx, ids, map[string]any{
		"deleted_at": nil,
		"deleted_by": nil,
		"updated_by": nullable(actor),
	}, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("deleted_at IS NOT NULL")
	})
}

func (r *ItemGormRepository) SetStatusMany(
	ctx context.Context,
	ids []string,
	status item.Status,
	actor string,
) (int64, error) {
	return r.items.UpdateMany(ctx, ids, map[string]any{
		"status":     string(status),
		"updated_by": nullable(actor),
	}, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("status <> ?", string(status))
	})
}

// ======================================================
// SEED
// ======================================================

// ReplaceAll wipes the table, soft-deleted rows included, and inserts
// items in one transaction.
func (r *ItemGormRepository) ReplaceAll(
	ctx context.Context,
	items []models.Item,
) (int64, error) {
	var deleted int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		base := NewGorm[models.Item](tx)

		n, err := base.DeleteAll(ctx)
		if err != nil {
			return err
		}
		deleted = n

		return base.CreateMany(ctx, items)
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}
