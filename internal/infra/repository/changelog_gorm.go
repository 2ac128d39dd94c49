package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/shop-api/internal/changelog"
	"github.com/BruksfildServices01/shop-api/internal/models"
)

type ChangeLogGormRepository struct {
	logs *Gorm[models.ChangeLog]
}

func NewChangeLogGormRepository(db *gorm.DB) *ChangeLogGormRepository {
	return &ChangeLogGormRepository{logs: NewGorm[models.ChangeLog](db)}
}

var _ changelog.Store = (*ChangeLogGormRepository)(nil)

func (r *ChangeLogGormRepository) Create(ctx context.Context, log *models.ChangeLog) error {
	return r.logs.Create(ctx, log)
}

func (r *ChangeLogGormRepository) List(
	ctx context.Context,
	f changelog.Filter,
) ([]models.ChangeLog, int64, error) {
	var scopes []Scope
	if f.RefCollection != "" {
		scopes = append(scopes, equals("ref_collection", f.RefCollection))
	}
	if f.RefID != "" {
		scopes = append(scopes, equals("ref_id", f.RefID))
	}
	if f.Action != "" {
		scopes = append(scopes, equals("action", f.Action))
	}
	if f.User != "" {
		scopes = append(scopes, equals("actor", f.User))
	}

	total, err := r.logs.Count(ctx, Query{Scopes: scopes})
	if err != nil {
		return nil, 0, err
	}

	logs, err := r.logs.Find(ctx, Query{
		Scopes: scopes,
		Order:  "timestamp DESC, id DESC",
		Offset: f.Page.Offset(),
		Limit:  f.Page.Limit,
	})
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
