package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/shop-api/internal/domain"
)

// Scope narrows a query. Scopes are plain gorm scopes so callers can use
// any Where/Preload the dialect supports.
type Scope = func(*gorm.DB) *gorm.DB

// Query describes a read. IncludeDeleted is consumed by Versioned and is
// never turned into a column condition by Gorm.
type Query struct {
	Scopes []Scope
	Order  string
	Offset int
	Limit  int

	IncludeDeleted bool
}

// Update is a targeted write. Column names in Set and Inc come from code,
// never from request input. Scopes are extra conditions the row must meet
// inside the same UPDATE statement.
type Update struct {
	Set             map[string]any
	Inc             map[string]int
	ExpectedVersion *int
	Scopes          []Scope
}

// Repository is the storage contract shared by every entity. T is a gorm
// model with a string primary key column named id.
type Repository[T any] interface {
	Create(ctx context.Context, entity *T) error
	CreateMany(ctx context.Context, entities []T) error

	FindByID(ctx context.Context, id string, q Query) (*T, error)
	Find(ctx context.Context, q Query) ([]T, error)
	Count(ctx context.Context, q Query) (int64, error)

	UpdateByID(ctx context.Context, id string, u Update) (*T, error)
	UpdateWhere(ctx context.Context, q Query, u Update) (int64, error)

	DeleteByID(ctx context.Context, id string) (*T, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// Gorm is the policy-free Repository over a *gorm.DB.
type Gorm[T any] struct {
	db *gorm.DB
}

func NewGorm[T any](db *gorm.DB) *Gorm[T] {
	return &Gorm[T]{db: db}
}

func (r *Gorm[T]) scoped(ctx context.Context, q Query) *gorm.DB {
	return r.db.WithContext(ctx).Model(new(T)).Scopes(q.Scopes...)
}

func (r *Gorm[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *Gorm[T]) CreateMany(ctx context.Context, entities []T) error {
	if len(entities) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(entities, 100).Error
}

func (r *Gorm[T]) FindByID(ctx context.Context, id string, q Query) (*T, error) {
	var out T
	err := r.scoped(ctx, q).Where("id = ?", id).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Gorm[T]) Find(ctx context.Context, q Query) ([]T, error) {
	tx := r.scoped(ctx, q)
	if q.Order != "" {
		tx = tx.Order(q.Order)
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var out []T
	if err := tx.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Gorm[T]) Count(ctx context.Context, q Query) (int64, error) {
	var n int64
	if err := r.scoped(ctx, q).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// UpdateByID issues one conditional UPDATE. With ExpectedVersion set the
// match is on id AND version, so the compare-and-swap happens inside the
// database statement.
func (r *Gorm[T]) UpdateByID(ctx context.Context, id string, u Update) (*T, error) {
	tx := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Scopes(u.Scopes...)
	if u.ExpectedVersion != nil {
		tx = tx.Where("version = ?", *u.ExpectedVersion)
	}

	res := tx.Updates(assignments(u))
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		return nil, r.missed(ctx, id, u)
	}

	return r.FindByID(ctx, id, Query{})
}

// missed explains a zero-row UpdateByID: a row that still matches the
// scopes lost on version, anything else is not found.
func (r *Gorm[T]) missed(ctx context.Context, id string, u Update) error {
	if u.ExpectedVersion == nil {
		return domain.ErrNotFound
	}

	scopes := make([]Scope, 0, len(u.Scopes)+1)
	scopes = append(scopes, u.Scopes...)
	n, err := r.Count(ctx, Query{Scopes: append(scopes, equals("id", id))})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return domain.ErrVersionConflict
}

func (r *Gorm[T]) UpdateWhere(ctx context.Context, q Query, u Update) (int64, error) {
	if len(q.Scopes) == 0 {
		return 0, fmt.Errorf("update without conditions refused")
	}

	res := r.scoped(ctx, q).Updates(assignments(u))
	return res.RowsAffected, res.Error
}

func (r *Gorm[T]) DeleteByID(ctx context.Context, id string) (*T, error) {
	found, err := r.FindByID(ctx, id, Query{})
	if err != nil {
		return nil, err
	}

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return found, nil
}

func (r *Gorm[T]) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(new(T))
	return res.RowsAffected, res.Error
}

func assignments(u Update) map[string]any {
	values := make(map[string]any, len(u.Set)+len(u.Inc))
	for col, v := range u.Set {
		values[col] = v
	}
	for col, n := range u.Inc {
		values[col] = gorm.Expr(col+" + ?", n)
	}
	return values
}
