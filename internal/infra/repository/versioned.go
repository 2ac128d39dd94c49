package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const versionColumn = "version"

func notDeleted(tx *gorm.DB) *gorm.DB {
	return tx.Where("deleted_at IS NULL")
}

// Versioned adds the soft-delete and optimistic versioning policy to a
// Repository whose model embeds models.Audit.
//
// Reads hide soft-deleted rows unless Query.IncludeDeleted is set. Every
// targeted or multi-row update stamps updated_at and adds exactly one to
// version, whatever the caller put in Set or Inc for version.
type Versioned[T any] struct {
	base Repository[T]
	now  func() time.Time
}

func NewVersioned[T any](base Repository[T]) *Versioned[T] {
	return &Versioned[T]{
		base: base,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (r *Versioned[T]) visible(q Query) Query {
	if q.IncludeDeleted {
		return q
	}
	scopes := make([]Scope, 0, len(q.Scopes)+1)
	scopes = append(scopes, q.Scopes...)
	q.Scopes = append(scopes, notDeleted)
	return q
}

func (r *Versioned[T]) stamp(u Update) Update {
	set := make(map[string]any, len(u.Set)+1)
	for col, v := range u.Set {
		if col == versionColumn {
			continue
		}
		set[col] = v
	}
	set["updated_at"] = r.now()

	inc := make(map[string]int, len(u.Inc)+1)
	for col, n := range u.Inc {
		if col == versionColumn {
			continue
		}
		inc[col] = n
	}
	inc[versionColumn] = 1

	return Update{Set: set, Inc: inc, ExpectedVersion: u.ExpectedVersion, Scopes: u.Scopes}
}

func (r *Versioned[T]) Create(ctx context.Context, entity *T) error {
	return r.base.Create(ctx, entity)
}

func (r *Versioned[T]) CreateMany(ctx context.Context, entities []T) error {
	return r.base.CreateMany(ctx, entities)
}

func (r *Versioned[T]) FindByID(ctx context.Context, id string, q Query) (*T, error) {
	return r.base.FindByID(ctx, id, r.visible(q))
}

func (r *Versioned[T]) Find(ctx context.Context, q Query) ([]T, error) {
	return r.base.Find(ctx, r.visible(q))
}

func (r *Versioned[T]) Count(ctx context.Context, q Query) (int64, error) {
	return r.base.Count(ctx, r.visible(q))
}

// UpdateByID does not filter soft-deleted rows; callers that must only
// touch live rows check visibility first.
func (r *Versioned[T]) UpdateByID(ctx context.Context, id string, u Update) (*T, error) {
	return r.base.UpdateByID(ctx, id, r.stamp(u))
}

// UpdateLive is UpdateByID restricted to rows that are not soft-deleted.
// The check is part of the UPDATE itself, so a concurrent soft-delete
// turns the write into domain.ErrNotFound.
func (r *Versioned[T]) UpdateLive(ctx context.Context, id string, u Update) (*T, error) {
	scopes := make([]Scope, 0, len(u.Scopes)+1)
	scopes = append(scopes, u.Scopes...)
	u.Scopes = append(scopes, notDeleted)
	return r.UpdateByID(ctx, id, u)
}

func (r *Versioned[T]) UpdateWhere(ctx context.Context, q Query, u Update) (int64, error) {
	return r.base.UpdateWhere(ctx, q, r.stamp(u))
}

// SoftDelete marks the row deleted by actor. Calling it again refreshes
// the marker.
func (r *Versioned[T]) SoftDelete(ctx context.Context, id string, actor string) (*T, error) {
	return r.UpdateByID(ctx, id, Update{Set: map[string]any{
		"deleted_at": r.now(),
		"deleted_by": nullable(actor),
		"updated_by": nullable(actor),
	}})
}

// Restore clears the deletion marker whether or not it was set.
func (r *Versioned[T]) Restore(ctx context.Context, id string, actor string) (*T, error) {
	return r.UpdateByID(ctx, id, Update{Set: map[string]any{
		"deleted_at": nil,
		"deleted_by": nil,
		"updated_by": nullable(actor),
	}})
}

// UpdateMany applies set to the rows with the given ids in one statement
// and returns how many rows were modified. Extra scopes narrow the match,
// typically to rows whose value actually changes.
func (r *Versioned[T]) UpdateMany(ctx context.Context, ids []string, set map[string]any, only ...Scope) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	scopes := append([]Scope{idIn(ids)}, only...)
	return r.UpdateWhere(ctx, Query{Scopes: scopes}, Update{Set: set})
}

// HardDelete bypasses the policy and removes the row.
func (r *Versioned[T]) HardDelete(ctx context.Context, id string) (*T, error) {
	return r.base.DeleteByID(ctx, id)
}

func (r *Versioned[T]) DeleteByID(ctx context.Context, id string) (*T, error) {
	return r.HardDelete(ctx, id)
}

func (r *Versioned[T]) DeleteAll(ctx context.Context) (int64, error) {
	return r.base.DeleteAll(ctx)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
